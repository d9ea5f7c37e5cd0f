package utils

const UnknownGenre = "Desconhecido"

// Catalog genre ids mapped to the labels shown to customers.
var genreLabels = map[int]string{
	28:    "Ação",
	12:    "Aventura",
	16:    "Animação",
	35:    "Comédia",
	80:    "Crime",
	99:    "Documentário",
	18:    "Drama",
	10751: "Família",
	14:    "Fantasia",
	36:    "História",
	27:    "Terror",
	10402: "Música",
	9648:  "Mistério",
	10749: "Romance",
	878:   "Ficção Científica",
	10770: "Cinema TV",
	53:    "Thriller",
	10752: "Guerra",
	37:    "Faroeste",
}

func GetGenreLabel(id int) (string, bool) {
	label, ok := genreLabels[id]
	return label, ok
}
