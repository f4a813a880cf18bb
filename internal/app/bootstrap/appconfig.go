// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like ports, TLS, and logging; AppConfig is
// everything specific to SlateTrack.
type AppConfig struct {
	// Storage configuration
	DataPath string // Path to the sqlite data file

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: slatetrack-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Demo data
	SeedDemoUsers bool // Seed the demo user catalog when no users exist
}
