package main

import (
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the application settings read once at startup. The
// password is bcrypt-hashed at load time and never kept in the clear.
type Config struct {
	DBPath       string
	Secret       string
	Username     string
	PasswordHash string
	NotifyURL    string
	Addr         string
}

func loadConfig() Config {
	return Config{
		DBPath:       getenv("BLOG_DB", "flaskr.db"),
		Secret:       getenv("BLOG_SECRET", "development key"),
		Username:     getenv("BLOG_USER", "admin"),
		PasswordHash: mustHashPassword(getenv("BLOG_PASS", "default")),
		NotifyURL:    getenv("BLOG_NOTIFY_URL", "https://postman-echo.com/post"),
		Addr:         getenv("BLOG_ADDR", ":8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustHashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
