package filtering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/adshield/internal/filtering"
)

func TestBypassRegistry_ConsumeOnce(t *testing.T) {
	r := filtering.NewBypassRegistry(0)

	r.AllowOnce("https://doubleclick.net/ad.js#frag")
	assert.Equal(t, 1, r.Count())

	assert.True(t, r.Consume("https://doubleclick.net/ad.js"))
	assert.False(t, r.Consume("https://doubleclick.net/ad.js"), "bypass is single use")
	assert.Equal(t, 0, r.Count())
}

func TestBypassRegistry_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := filtering.NewBypassRegistry(time.Second)
	r.SetClock(func() time.Time { return now })

	r.AllowOnce("https://a.test/x")
	r.AllowOnce("https://b.test/y")
	now = now.Add(2 * time.Second)

	assert.Equal(t, 0, r.Count())
	assert.False(t, r.Consume("https://b.test/y"))
}

func TestBypassRegistry_IgnoresBlankAndClear(t *testing.T) {
	r := filtering.NewBypassRegistry(time.Minute)
	r.AllowOnce("   ")
	assert.Equal(t, 0, r.Count())

	r.AllowOnce("https://a.test/")
	r.Clear()
	assert.False(t, r.Consume("https://a.test/"))
}
