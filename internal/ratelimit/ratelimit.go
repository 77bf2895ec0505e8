package ratelimit

import (
	"context"
	"time"
)

// Category is a coarse classification of a mutation's abuse risk, used to
// select a ceiling. Creation is stricter than plain updates.
type Category string

const (
	CategoryDefault Category = "default"
	CategoryCreate  Category = "create"
	CategoryBulk    Category = "bulk"
	CategoryAI      Category = "ai"
)

// Config memetakan kategori ke plafon per window.
type Config struct {
	Window   time.Duration
	Ceilings map[Category]int
}

// DefaultConfig mirrors the product's abuse ceilings: one minute windows,
// 60 untuk operasi biasa, 20 untuk create, 10 bulk, 5 AI.
func DefaultConfig() Config {
	return Config{
		Window: time.Minute,
		Ceilings: map[Category]int{
			CategoryDefault: 60,
			CategoryCreate:  20,
			CategoryBulk:    10,
			CategoryAI:      5,
		},
	}
}

func (c Config) Ceiling(cat Category) int {
	if n, ok := c.Ceilings[cat]; ok {
		return n
	}
	return c.Ceilings[CategoryDefault]
}

// Decision is a control-flow outcome, never a fault: a denied check maps to
// a 429 for the client, not to an internal error.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

//go:generate mockgen -source=ratelimit.go -destination=mock/limiter_mock.go -package=mock
type Limiter interface {
	// Check melakukan increment-and-compare atomik pada bucket
	// (principalID, category). Counter selalu naik, terlepas dari apakah
	// langkah downstream selesai — request yang ditinggalkan tetap
	// menghabiskan jatah.
	Check(ctx context.Context, principalID string, cat Category) (Decision, error)
}

func bucketKey(principalID string, cat Category) string {
	return "ratelimit:user:" + principalID + ":" + string(cat)
}
