//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (user-agent fingerprint, IP + geolocation, and timestamp) for the
//  access log.  These structs are inert; they contain no pointers to
//  database handles or large buffers, so they are safe to log or
//  JSON-encode.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package requestinfo

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties the access log records.
type UA struct {
	Browser string // "Chrome", "Firefox", "Safari", ...
	OS      string // "macOS", "Windows", "Android", ...
	Device  string // "Desktop", "Phone", "Tablet", ...
	IsBot   bool   // True if UA matches known crawler signatures
}

// Geo holds IP-based geolocation hints.  Best-effort; fields may be
// empty when the database has no match or is not configured.
type Geo struct {
	IP         net.IP
	CountryISO string // "BR", "US", ...
	City       string // "Campina Grande", ...
}

// RequestInfo is stored in the request context by the Enrich middleware
// and consumed by the access-log middleware.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	Timestamp time.Time
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle.  It is safe for concurrent
// reads, which is all we ever perform.  Nil when geo lookup is disabled.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database at startup.  An empty path
// leaves geo lookup disabled; an unreadable file is reported so the
// caller can decide whether to continue without it.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich.  It
// returns nil if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)

	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      osName,
		Device:  deviceTypeToString(u.DeviceType),
		IsBot:   u.IsBot(),
	}
}

// deviceTypeToString maps uasurfer.DeviceType to a log-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	default:
		return "Unknown"
	}
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
