// internal/config/model.go
//
// Typed configuration model for the BrainPlay platform core.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                      – dotenv values,
//   • `conf/global.yaml`                   – primary static file,
//   • `BP_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Platform section
//

// Platform holds tenant-routing knobs.  RootDomain is the apex against
// which every Host header is matched; subdomain labels left of it name
// tenants.
type Platform struct {
	RootDomain     string `koanf:"root_domain" validate:"required,fqdn"`
	AdminJWTSecret string `koanf:"admin_jwt_secret" validate:"required"`
}

//
// Database section
//

// Database holds the Postgres DSN for the platform store.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// Redis section
//

// Redis configures the tenant snapshot cache.  TenantTTLSeconds bounds
// staleness when explicit invalidation is missed; it defaults to one
// hour.
type Redis struct {
	Addr             string `koanf:"addr" validate:"required,hostname_port"`
	Password         string `koanf:"password"`
	DB               int    `koanf:"db"`
	TenantTTLSeconds int    `koanf:"tenant_ttl_seconds"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.
type Paths struct {
	Root string // BP_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Platform Platform `koanf:"platform"`
	Database Database `koanf:"database"`
	Redis    Redis    `koanf:"redis"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
