// internal/store/date.go
//
// Civil date for DATE columns.
//
// Context
// -------
// The wire contract uses bare dates ("2024-03-01") for vínculo fields,
// but encoding/json only understands RFC 3339 on time.Time, and the
// MySQL driver returns DATE columns as time.Time when parseTime is on.
// Date bridges the two: it scans from the driver, drives back as a
// plain date string, and round-trips the bare-date JSON form.
package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day component.
type Date struct {
	time.Time
}

// Today returns the current UTC day.
func Today() Date {
	return Date{time.Now().UTC().Truncate(24 * time.Hour)}
}

// ParseDate parses the bare "YYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

// MarshalJSON emits the bare-date form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts the bare-date form only; timestamps are a
// validation error the caller reports per field.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// Scan implements sql.Scanner for time.Time and []byte sources.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
	return fmt.Errorf("cannot scan %T into store.Date", src)
}

// Before reports calendar ordering; equality counts as not-before.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// NullDate unwraps an optional date for changeset use, nil becoming SQL
// NULL.
func NullDate(d *Date) any {
	if d == nil {
		return nil
	}
	return *d
}
