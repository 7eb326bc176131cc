package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	AppName        string
	Debug          bool
	JWTSecret      string
	ServerPort     int
	ServerHost     string
	APIURL         string
	RulesScript    string
	SubmitCooldown time.Duration
	SessionFile    string
}

// ListenAddr returns the host:port the API server binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load reads configuration for the client commands. A missing JWT secret
// is fine here; only the server needs it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading from environment")
	}

	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite3://blockdrop.db"),
		AppName:        getEnv("APP_NAME", "Block Drop"),
		Debug:          getEnvAsBool("DEBUG", false),
		ServerPort:     getEnvAsInt("SERVER_PORT", 8080),
		ServerHost:     getEnv("SERVER_HOST", "localhost"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		APIURL:         getEnv("API_URL", "http://localhost:8080"),
		RulesScript:    getEnv("RULES_SCRIPT", "games/blockdrop/blockdrop.lua"),
		SubmitCooldown: getEnvAsDuration("SUBMIT_COOLDOWN", 10*time.Second),
		SessionFile:    getEnv("SESSION_FILE", defaultSessionFile()),
	}, nil
}

// LoadServer reads configuration and makes sure a JWT secret exists,
// generating one into .env on first run.
func LoadServer() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		newKey := make([]byte, 32)
		if _, err := rand.Read(newKey); err != nil {
			return nil, fmt.Errorf("failed to generate a new JWT key: %w", err)
		}
		encodedKey := base64.StdEncoding.EncodeToString(newKey)

		envFilePath := ".env"
		f, err := os.OpenFile(envFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			errorMsg := fmt.Sprintf(`
FATAL: JWT_SECRET is not set and I couldn't write to the .env file.
Error: %v

Please create a .env file and add the following line:

JWT_SECRET=%s

`, err, encodedKey)
			return nil, fmt.Errorf("%s", errorMsg)
		}
		defer f.Close()

		newLine := fmt.Sprintf("\nJWT_SECRET=%s\n", encodedKey)
		if _, err := f.WriteString(newLine); err != nil {
			errorMsg := fmt.Sprintf(`
FATAL: JWT_SECRET is not set and I failed to write to the .env file.
Error: %v

Please add the following line to your .env file:

JWT_SECRET=%s

`, err, encodedKey)
			return nil, fmt.Errorf("%s", errorMsg)
		}

		return nil, fmt.Errorf("[SETUP] JWT_SECRET was missing. A new secret has been generated and saved to your .env file. Please restart the server")
	}

	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blockdrop_session"
	}
	return filepath.Join(home, ".blockdrop_session")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
