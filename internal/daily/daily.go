package daily

import (
	"time"
)

// DefaultSalt prefixes daily seeds. Kept configurable so deployments can run
// distinct daily puzzles against the same engine.
const DefaultSalt = "hmf"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the deterministic generation seed for a date: salt + "-" +
// the UTC date key. Every player worldwide gets the same puzzle for a given
// date and salt.
func Seed(t time.Time, salt string) string {
	if salt == "" {
		salt = DefaultSalt
	}
	return salt + "-" + DateKey(t)
}
