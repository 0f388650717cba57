// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `PPGHUB_`, where `__` maps to “.”
     (e.g., `PPGHUB_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
`vault:` values are resolved, the runtime root path is attached, and the
result is validated and cached in an `atomic.Pointer` for lock-free
reads.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, env overlay.
  • ERROR spans — YAML parse, env overlay, unmarshal, Vault, validation.
  • INFO  span  — final “config loaded” with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/api` work from any sub-directory.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/ppghub/ppghub/internal/vault"
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves PPGHUB_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("PPGHUB_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves secrets, validates, and
// caches the Config.
func Load(ctx context.Context) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: PPGHUB_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("PPGHUB_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(ctx, &cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"env", cfg.App.Env,
		"debug", cfg.App.Debug,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── secret resolution ───────────────────────────*/

// resolveSecrets replaces every `vault:mount/path#key` value with the
// secret it names.  The Vault client is constructed lazily so setups
// without Vault never touch the SDK.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	if !strings.HasPrefix(cfg.Database.Password, "vault:") {
		return nil
	}

	cli, err := vault.New(ctx, zap.S().Infof)
	if err != nil {
		return fmt.Errorf("vault client: %w", err)
	}

	ref := strings.TrimPrefix(cfg.Database.Password, "vault:")
	path, key, ok := strings.Cut(ref, "#")
	if !ok {
		return fmt.Errorf("malformed vault reference %q (want path#key)", ref)
	}

	pw, err := cli.GetKV(ctx, path, key, 5*time.Minute)
	if err != nil {
		return err
	}
	cfg.Database.Password = pw
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// MySQLDSN substitutes the password into the DSN template's single %s
// verb.  Templates without a verb are returned as-is.
func (c *Config) MySQLDSN() string {
	if strings.Contains(c.Database.DSN, "%s") {
		return fmt.Sprintf(c.Database.DSN, c.Database.Password)
	}
	return c.Database.DSN
}

func Get() *Config { return current.Load() }
