package hold

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store tracks short-lived slot holds for pending_payment bookings. The TTL
// matches the payment window; once a hold lapses the cron sweep cancels the
// booking and the slot opens up again.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func key(staffID uint, date, timeSlot string) string {
	return fmt.Sprintf("slot_hold:%d:%s:%s", staffID, date, timeSlot)
}

// Acquire claims the slot for the payment window. Returns false when another
// payment is already in flight for the same slot.
func (s *Store) Acquire(ctx context.Context, staffID uint, date, timeSlot string) (bool, error) {
	return s.rdb.SetNX(ctx, key(staffID, date, timeSlot), 1, s.ttl).Result()
}

func (s *Store) Release(ctx context.Context, staffID uint, date, timeSlot string) error {
	return s.rdb.Del(ctx, key(staffID, date, timeSlot)).Err()
}

// Held reports whether a payment window is still open for the slot.
func (s *Store) Held(ctx context.Context, staffID uint, date, timeSlot string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(staffID, date, timeSlot)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
