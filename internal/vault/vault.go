// internal/vault/vault.go
//
// Vault client wrapper.
//
// Context
// -------
//   - Wraps the HashiCorp Vault Go SDK behind the two calls the config
//     loader needs: construct a client, and read one key from a KV-v2
//     secret.
//   - Adds per-key caching with a TTL so repeated config reloads do not
//     hammer the Vault server, and a background token-renewal loop so a
//     long-lived process keeps its lease.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx, log.Printf)       // during boot.
//  2. pw,  err := cli.GetKV(ctx, path, key, ttl)   // from the loader.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Client is safe for concurrent use.  Create once at startup.  Zero
// value is invalid.
type Client struct {
	api   *vault.Client
	logFn func(string, ...any)

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry.
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client and starts a background token-renewal
// loop tied to ctx.
func New(ctx context.Context, logFn func(string, ...any)) (*Client, error) {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	c := &Client{
		api:   apiCli,
		logFn: logFn,
		cache: make(map[string]cached),
	}

	go c.renewLoop(ctx)

	return c, nil
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the result
// is cached for that duration; subsequent callers within the TTL receive
// the cached copy.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}

	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}

	return sval, nil
}

//
// Background token renewal
//

// renewLoop renews the client token on a fixed cadence.  Non-renewable
// tokens (dev servers, root tokens) just sleep; failures back off and
// retry rather than killing the process, since the cached secret keeps
// the API serving.
func (c *Client) renewLoop(ctx context.Context) {
	const probeEvery = 30 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(probeEvery):
		}

		sec, err := c.api.Auth().Token().RenewSelfWithContext(ctx, 0)
		if err != nil {
			c.logFn("vault: token renew failed: %v", err)
			continue
		}
		if sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
			c.logFn("vault: token is not renewable")
			continue
		}
		c.logFn("vault: token renewed, ttl=%ds", sec.Auth.LeaseDuration)
	}
}

//
// Helpers
//

func splitMount(p string) (mount, rel string) {
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}
