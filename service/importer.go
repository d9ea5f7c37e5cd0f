package service

import (
	"cinema_scheduler/catalog"
	"cinema_scheduler/constants"
	"cinema_scheduler/events"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	importPages      = 3
	defaultRuntime   = 120
	missingSynopsis  = "Sinopse indisponível"
	DefaultCallDelay = 150 * time.Millisecond
)

var importCategories = []string{catalog.NowPlaying, catalog.Upcoming}

// Catalog is the remote source of movie metadata.
type Catalog interface {
	ListByCategory(ctx context.Context, category string, page int) (catalog.Page, error)
	Detail(ctx context.Context, id int64) (catalog.Detail, error)
}

type ImportResult struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

type CatalogImporter struct {
	deps
	catalog Catalog
	// Delay separates consecutive detail calls to stay under the catalog rate limit.
	Delay time.Duration
}

func NewCatalogImporter(st store.Store, remote Catalog, clock clockwork.Clock, pub events.Publisher, log *zap.Logger) *CatalogImporter {
	return &CatalogImporter{deps: newDeps(st, clock, pub, log), catalog: remote, Delay: DefaultCallDelay}
}

func critical(err error) *Error {
	return &Error{Kind: KindExternalService, Message: fmt.Sprintf(constants.IMPORT_CRITICAL_ERROR, err.Error()), Err: err}
}

// Import pulls the first pages of each category and saves new movies page by page.
// A failing page is skipped and the run goes on with the next one; the first
// failure is reported once every page was tried. Saved pages stay saved.
func (im *CatalogImporter) Import(ctx context.Context) (ImportResult, error) {
	total := 0
	seen := map[string]bool{}
	var firstErr error

	for _, category := range importCategories {
		for page := 1; page <= importPages; page++ {
			imported, err := im.importPage(ctx, category, page, seen)
			total += imported
			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				return ImportResult{Imported: total}, critical(err)
			}
			im.log.Warn("catalog page failed",
				zap.String("category", category),
				zap.Int("page", page),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if total > 0 || firstErr == nil {
		im.emit(ctx, events.MoviesImported, map[string]int{"imported": total})
	}
	if firstErr != nil {
		return ImportResult{Imported: total}, critical(firstErr)
	}
	return ImportResult{Imported: total, Message: fmt.Sprintf(constants.IMPORT_SUCCESS, total)}, nil
}

func (im *CatalogImporter) importPage(ctx context.Context, category string, page int, seen map[string]bool) (int, error) {
	list, err := im.catalog.ListByCategory(ctx, category, page)
	if err != nil {
		return 0, err
	}
	batch, err := im.stage(ctx, list.Results, seen)
	if err != nil {
		return 0, err
	}
	if err := im.save(ctx, batch); err != nil {
		return 0, err
	}
	for _, m := range batch {
		seen[m.Title] = true
	}
	im.log.Info("catalog page imported",
		zap.String("category", category),
		zap.Int("page", page),
		zap.Int("movies", len(batch)))
	return len(batch), nil
}

func (im *CatalogImporter) stage(ctx context.Context, items []catalog.Item, seen map[string]bool) ([]*model.Movie, error) {
	var batch []*model.Movie
	staged := map[string]bool{}
	for _, item := range items {
		if seen[item.Title] || staged[item.Title] {
			continue
		}
		existing, err := im.store.MovieByTitle(ctx, item.Title)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			seen[item.Title] = true
			continue
		}

		if err := im.wait(ctx); err != nil {
			return nil, err
		}
		detail, err := im.catalog.Detail(ctx, item.ID)
		if err != nil {
			return nil, err
		}

		release, err := utils.ParseDate(item.ReleaseDate)
		if err != nil {
			im.log.Debug("skipping catalog item without a usable release date",
				zap.Int64("externalId", item.ID),
				zap.String("releaseDate", item.ReleaseDate))
			continue
		}

		staged[item.Title] = true
		batch = append(batch, toMovie(item, detail, release))
	}
	return batch, nil
}

func toMovie(item catalog.Item, detail catalog.Detail, release utils.CustomDate) *model.Movie {
	synopsis := detail.Overview
	if synopsis == "" {
		synopsis = missingSynopsis
	}
	runtime := detail.Runtime
	if runtime <= 0 {
		runtime = defaultRuntime
	}
	runtime = max(model.MinMovieDuration, min(model.MaxMovieDuration, runtime))
	poster := ""
	if item.PosterPath != "" {
		poster = catalog.PosterBaseURL + item.PosterPath
	}
	return &model.Movie{
		Title:       item.Title,
		Genre:       genreOf(item, detail),
		Duration:    runtime,
		ReleaseDate: release,
		Popularity:  max(0, item.Popularity),
		PosterURL:   poster,
		Synopsis:    synopsis,
		ExternalId:  item.ID,
	}
}

func genreOf(item catalog.Item, detail catalog.Detail) string {
	if len(detail.Genres) > 0 {
		first := detail.Genres[0]
		if label, ok := utils.GetGenreLabel(first.ID); ok {
			return label
		}
		if first.Name != "" {
			return first.Name
		}
	}
	if len(item.GenreIds) > 0 {
		if label, ok := utils.GetGenreLabel(item.GenreIds[0]); ok {
			return label
		}
	}
	return utils.UnknownGenre
}

func (im *CatalogImporter) save(ctx context.Context, batch []*model.Movie) error {
	if len(batch) == 0 {
		return nil
	}
	return im.store.WithTx(ctx, func(tx store.Store) error {
		assigned := map[string]bool{}
		taken := func(ctx context.Context, slug string) (bool, error) {
			if assigned[slug] {
				return true, nil
			}
			return tx.MovieSlugTaken(ctx, slug)
		}
		for _, m := range batch {
			slug, err := utils.UniqueSlug(ctx, m.Title, taken)
			if err != nil {
				return err
			}
			m.Slug = slug
			assigned[slug] = true
		}
		return tx.CreateMovies(ctx, batch)
	})
}

func (im *CatalogImporter) wait(ctx context.Context) error {
	if im.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(im.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
