// Package config loads the environment-provided configuration once at
// startup. Variable names follow the deployment's existing .env layout.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port                string
	MongoURL            string
	JWTSecret           string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load reads an optional .env file and the process environment. Real
// environment variables win over .env values.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                getenv("PORT", "8000"),
		MongoURL:            os.Getenv("mongo_url"),
		JWTSecret:           os.Getenv("jwt_secret"),
		CloudinaryName:      os.Getenv("Cloudinary_name"),
		CloudinaryAPIKey:    os.Getenv("Cloudinary_api_key"),
		CloudinaryAPISecret: os.Getenv("Cloudinary_api_secret"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
