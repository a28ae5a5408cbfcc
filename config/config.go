package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	AppPort             string
	APIPrefix           string
	AllowedOrigins      string
	DBDriver            string
	DatabaseURL         string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPath              string
	DBMaxIdleConns      int
	DBMaxOpenConns      int
	BcryptCost          int
	MaxBodyBytes        int64
	NATSURL             string
	EventsSubjectPrefix string
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

// loadDotEnv reads variables from an optional .env file without overriding
// anything already present in the environment.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		log.Printf("Failed to read %s: %v", path, err)
	}
}

func Load() Config {
	log.Println("Loading configuration...")
	loadDotEnv(getEnv("ENV_FILE", ".env"))

	return Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		AppPort:             getEnv("APP_PORT", "8080"),
		APIPrefix:           getEnv("API_PREFIX", ""),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", "*"),
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "taskpro"),
		DBPassword:          getEnv("DB_PASSWORD", "taskpro"),
		DBName:              getEnv("DB_NAME", "taskpro"),
		DBPath:              getEnv("DB_PATH", "taskpro.db"),
		DBMaxIdleConns:      getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:      getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		BcryptCost:          getEnvAsInt("BCRYPT_COST", 10),
		MaxBodyBytes:        int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		NATSURL:             getEnv("NATS_URL", ""),
		EventsSubjectPrefix: getEnv("EVENTS_SUBJECT_PREFIX", "taskpro"),
	}
}
