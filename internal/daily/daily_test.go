package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUTC(t *testing.T) {
	// 23:30 on Mar 1 in UTC+2 is still Feb 29 UTC.
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := time.Date(2024, 3, 1, 1, 30, 0, 0, loc)
	assert.Equal(t, "2024-02-29", DateKey(ts))
}

func TestSeedFormat(t *testing.T) {
	ts := time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "hmf-2025-07-04", Seed(ts, ""))
	assert.Equal(t, "hmf-2025-07-04", Seed(ts, DefaultSalt))
	assert.Equal(t, "custom-2025-07-04", Seed(ts, "custom"))
}

func TestSeedStableWithinDay(t *testing.T) {
	morning := time.Date(2025, 7, 4, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 7, 4, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Seed(morning, ""), Seed(night, ""))
}
