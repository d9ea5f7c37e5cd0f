package config

import "time"

type Settings struct {
	Env      string
	HTTPAddr string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	AMQPURL       string

	TMDBAPIKey   string
	TMDBBaseURL  string
	TMDBLanguage string

	ScheduleDays         int
	ScheduleWindowMonths int
	GracePeriod          time.Duration
	AutoScheduleAt       string
	ImportCron           string

	AdminUsername string
	AdminPassword string
}

// Load collects every setting the server needs, applying defaults for anything unset.
func Load() Settings {
	return Settings{
		Env:      String("APP_ENV", "development"),
		HTTPAddr: String("HTTP_ADDR", ":8002"),

		DBHost:     String("DB_HOST", "localhost"),
		DBPort:     Int("DB_PORT", 5432),
		DBUser:     String("DB_USER", "postgres"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     String("DB_NAME", "cinema"),

		JWTSecret: Config("JWT_SECRET"),
		JWTTTL:    Duration("JWT_TTL", 10*time.Minute),

		RedisAddr:     Config("REDIS_ADDR"),
		RedisPassword: Config("REDIS_PASSWORD"),
		AMQPURL:       Config("AMQP_URL"),

		TMDBAPIKey:   Config("TMDB_API_KEY"),
		TMDBBaseURL:  String("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBLanguage: String("TMDB_LANGUAGE", "pt-BR"),

		ScheduleDays:         Int("SCHEDULE_DAYS", 8),
		ScheduleWindowMonths: Int("SCHEDULE_WINDOW_MONTHS", 2),
		GracePeriod:          Duration("GRACE_PERIOD", 20*time.Minute),
		AutoScheduleAt:       String("AUTO_SCHEDULE_AT", "00:05"),
		ImportCron:           String("IMPORT_CRON", "0 3 * * 1"),

		AdminUsername: String("ADMIN_USERNAME", "admin"),
		AdminPassword: String("ADMIN_PASSWORD", "Admin@123"),
	}
}
