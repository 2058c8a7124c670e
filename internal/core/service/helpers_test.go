package service

import (
	"time"

	"github.com/rs/zerolog"
)

var (
	discardLogger = zerolog.Nop()
	baseTime      = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
)

type fakeClock struct {
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fastHasher keeps tests quick; production uses DefaultBcryptCost.
func fastHasher() *PasswordHasher {
	h, err := NewPasswordHasher(4)
	if err != nil {
		panic(err)
	}
	return h
}
