package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type HTTPServer struct {
	Host string
	Port string
}

type Catalog struct {
	Storage string
	File    string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns int
}

type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type Config struct {
	HTTP      HTTPServer
	Catalog   Catalog
	Postgres  Postgres
	RateLimit RateLimit
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

// FromEnv builds the config from the current environment without touching flags.
func FromEnv() *Config {
	return &Config{
		HTTP:      *newHTTP(),
		Catalog:   *newCatalog(),
		Postgres:  *newPostgres(),
		RateLimit: *newRateLimit(),
	}
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "3000"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		Storage: getenv("CATALOG_STORAGE", StorageFile),
		File:    getenv("CATALOG_FILE", "Data/movieList.json"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "flickpicker"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),

		MaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", 10),
	}
}

func newRateLimit() *RateLimit {
	return &RateLimit{
		Enabled: getenvBool("RATE_LIMIT_ENABLED", true),
		RPS:     getenvFloat("RATE_LIMIT_RPS", 4),
		Burst:   getenvInt("RATE_LIMIT_BURST", 8),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getenv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		fmt.Printf("%s %s is not an integer. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	return v
}

func getenvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64)), 64)
	if err != nil {
		fmt.Printf("%s %s is not a number. Using default value %v\n", logtag, key, defaultValue)
		return defaultValue
	}
	return v
}

func getenvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getenv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		fmt.Printf("%s %s is not a boolean. Using default value %t\n", logtag, key, defaultValue)
		return defaultValue
	}
	return v
}
