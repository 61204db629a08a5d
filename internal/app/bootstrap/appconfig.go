// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers framework-level settings (HTTP ports, TLS,
// logging, CORS). AppConfig is everything specific to Parivartan:
// database connection, session cookies, OAuth credentials, the AI
// backend, and the admin bootstrap lists.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name (default: parivartan-session)
	SessionDomain string // cookie domain (blank means current host)

	// Base URL the OAuth callback is registered under,
	// e.g. "https://parivartan.org" or "http://localhost:3000".
	BaseURL string

	// Google OAuth configuration. Leaving these blank disables sign-in;
	// the service still starts so public pages keep working.
	GoogleClientID     string
	GoogleClientSecret string

	// SuperAdminEmails are promoted to the top tier on first login.
	// ProtectedEmails can never have their role changed afterward.
	SuperAdminEmails []string
	ProtectedEmails  []string

	// Gemini configuration. A blank key puts the AI features in
	// permanent fallback mode.
	GeminiAPIKey string
	GeminiModel  string

	// Query timeout overrides. Zero keeps the built-in defaults.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
