package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"backend-runhub/internal/db"
	"backend-runhub/internal/live"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

var ErrUserNotFound = errors.New("user not found")

const cacheTTL = time.Hour

// Progress is a user's cached cumulative distance in meters, alongside
// their current goal.
type Progress struct {
	Progress float64 `json:"progress"`
	Goal     float64 `json:"goal"`
}

// Aggregator recomputes users.progress from the run table. The stored
// value is a cache, never an accumulator: every recompute replaces it
// with the authoritative sum, so a stale value heals on the next call.
type Aggregator struct {
	db    db.Querier
	cache *redis.Client
	hub   *live.Hub

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAggregator(querier db.Querier, cache *redis.Client, hub *live.Hub) *Aggregator {
	return &Aggregator{
		db:    querier,
		cache: cache,
		hub:   hub,
		locks: map[string]*sync.Mutex{},
	}
}

// Recompute sums distance_m over the user's runs and writes the result
// into users.progress, replacing the prior value. Recomputation is
// serialized per user so two concurrent triggers cannot interleave a
// stale read with a fresh write.
func (a *Aggregator) Recompute(ctx context.Context, userID string) (Progress, error) {
	lock := a.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var total float64
	err := a.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(distance_m), 0) FROM runs WHERE user_id=$1
	`, userID).Scan(&total)
	if err != nil {
		return Progress{}, err
	}

	var goal float64
	row := a.db.QueryRow(ctx, `
		UPDATE users SET progress=$2, updated_at=now() WHERE id=$1
		RETURNING goal
	`, userID, total)
	if err := row.Scan(&goal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// user deleted between the triggering mutation and the
			// write-back; the primary mutation already committed
			return Progress{}, ErrUserNotFound
		}
		return Progress{}, err
	}

	result := Progress{Progress: total, Goal: goal}
	a.publish(ctx, userID, result)
	return result, nil
}

// Cached returns the last published progress for a user, if redis holds
// one. A miss is not an error; callers fall back to Recompute.
func (a *Aggregator) Cached(ctx context.Context, userID string) (Progress, bool) {
	if a.cache == nil {
		return Progress{}, false
	}
	raw, err := a.cache.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		return Progress{}, false
	}
	var cached Progress
	if err := json.Unmarshal(raw, &cached); err != nil {
		return Progress{}, false
	}
	return cached, true
}

func (a *Aggregator) publish(ctx context.Context, userID string, result Progress) {
	payload, _ := json.Marshal(result)

	if a.cache != nil {
		if err := a.cache.Set(ctx, cacheKey(userID), payload, cacheTTL).Err(); err != nil {
			log.Printf("progress cache set failed for user %s: %v", userID, err)
		}
	}
	if a.hub != nil {
		a.hub.Broadcast(userID, payload)
	}
}

func (a *Aggregator) userLock(userID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[userID] = lock
	}
	return lock
}

func cacheKey(userID string) string {
	return "progress:" + userID
}
