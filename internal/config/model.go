// internal/config/model.go
//
// Typed configuration model for the PPGHub API.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `PPGHUB_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so consumers only ever
// see plain strings.  The `vault:` form is `vault:<mount/path>#<key>`.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • `App.Debug` is the seam the 500 handler consults before exposing
//     real error text to clients.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// App section
//

// App holds identity and behavior toggles.
type App struct {
	Name  string `koanf:"name"`
	Env   string `koanf:"env"   validate:"omitempty,oneof=development staging production"`
	Debug bool   `koanf:"debug"`
}

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Database section
//

// Database holds the MySQL DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  The *secret* (`Password`) may
// be a literal for development or a `vault:` URI in production; it is
// substituted into the DSN's single %s verb at load time.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

//
// GeoIP section
//

// GeoIP points at an optional GeoLite2-City database used to enrich
// access-log entries.  Empty path disables the lookup.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or PPGHUB_ROOT override) so later code can
// build absolute file paths, most notably the log directory.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	App      App      `koanf:"app"`
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"`
}
