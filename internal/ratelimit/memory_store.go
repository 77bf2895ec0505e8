package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count     int
	windowEnd time.Time
}

// MemoryStore is a fixed-window counter limiter for single-process
// deployments. Semua increment terjadi di bawah satu mutex, jadi dua
// request paralel dari principal yang sama tidak pernah lolos berdua
// ketika sisa jatah tinggal satu.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     Config
	now     func() time.Time
}

func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *MemoryStore) Check(_ context.Context, principalID string, cat Category) (Decision, error) {
	key := bucketKey(principalID, cat)
	ceiling := s.cfg.Ceiling(cat)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || !now.Before(b.windowEnd) {
		// Window baru: count mulai dari 1 dan langsung diizinkan.
		s.buckets[key] = &bucket{count: 1, windowEnd: now.Add(s.cfg.Window)}
		return Decision{Allowed: true, Remaining: ceiling - 1}, nil
	}

	b.count++
	if b.count > ceiling {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: b.windowEnd.Sub(now),
		}, nil
	}

	return Decision{Allowed: true, Remaining: ceiling - b.count}, nil
}

// Cleanup membuang bucket yang window-nya sudah lewat.
func (s *MemoryStore) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, b := range s.buckets {
		if !now.Before(b.windowEnd) {
			delete(s.buckets, k)
		}
	}
}

// StartJanitor menjalankan goroutine pembersih periodik; berhenti saat
// context dibatalkan.
func (s *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
