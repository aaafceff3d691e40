package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout at startup
const DBPingTimeout = 5 * time.Second

// Session and share link lifetimes
const (
	SessionTTL   = 24 * time.Hour
	ShareLinkTTL = 24 * time.Hour
)

// Analysis window: logs within the trailing seven days are summarized.
const AnalysisWindow = 7 * 24 * time.Hour

// OpenAI request timeout
const OpenAITimeout = 30 * time.Second

// Rate limit for credential endpoints, per client IP per minute
const CredentialRateLimitPerMin = 20
