package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// Every value has a default matching the fixed artifact paths, so a bare
// invocation needs no flags, no .env file and no environment at all.
type Config struct {
	Backend string // "sqlite" (default) or "postgres"

	SQLitePath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	CategoryFilter string

	CSVOutputPath string
	ImagesDir     string
	ReportPath    string

	MapSnapshot bool
	ChromeBin   string
}

// Load reads the optional .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Backend: strings.ToLower(getEnv("CRIME_DB_BACKEND", "sqlite")),

		SQLitePath: getEnv("DB_PATH", "crimes.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "crime"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "crime123"),
		PostgresDB:       getEnv("POSTGRES_DB", "crime_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		CategoryFilter: getEnv("CATEGORY_FILTER", "HOMICIDE"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "output/homicides.csv"),
		ImagesDir:     getEnv("OUTPUT_IMAGES_DIR", "output_images"),
		ReportPath:    getEnv("REPORT_PATH", "homicide_report.html"),

		MapSnapshot: getEnvBool("MAP_SNAPSHOT", false),
		ChromeBin:   getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string for the postgres backend.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// StoreDescription names the configured store for log output.
func (c *Config) StoreDescription() string {
	if c.Backend == "postgres" {
		return "postgres:" + c.PostgresDB
	}
	return c.SQLitePath
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
