package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

// ConfirmationCodeTTL bounds how long an issued signup confirmation code
// stays exchangeable.
var ConfirmationCodeTTL time.Duration

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour
	ConfirmationCodeTTL = 24 * time.Hour
}
