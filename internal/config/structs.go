package config

import (
	"time"

	"github.com/GoEduAdmin/GoEduAdmin/internal/logger"
)

// Token holds the settings for issuing and validating signed tokens.
type Token struct {
	SigningKey string        // symmetric signing key for HS256
	Issuer     string        // issuer claim embedded in and required of tokens
	Audience   string        // audience claim embedded in and required of tokens
	Lifetime   time.Duration // absolute token expiry, defaults to 24h when zero
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Token     Token
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
