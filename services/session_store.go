package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizplay/models"

	"github.com/redis/go-redis/v9"
)

// GameSession is the per-visitor record for one random-play game. It is
// stored as a JSON blob in Redis and threaded explicitly through every
// engine operation; nothing else holds it between requests.
type GameSession struct {
	// Order is a permutation of 0..N-1 over Items, fixed at game start.
	Order []int `json:"order"`
	// Items is the catalog snapshot taken at game start, so the game
	// stays stable even if quizzes are edited mid-game.
	Items []models.Quiz `json:"items"`
	// Score counts correct answers so far and doubles as the cursor
	// into Order: Items[Order[Score]] is the next question.
	Score int `json:"score"`
	// Pending is true while the current question's check has not yet
	// been committed to the score. A reload of the result page finds
	// it false and leaves the score alone.
	Pending bool `json:"pending"`
}

// Finished reports whether every question in the game has been answered.
func (gs *GameSession) Finished() bool {
	return gs.Score == len(gs.Order)
}

// Valid reports whether the record is internally consistent: order and
// snapshot agree and the cursor is within 0..N. A record failing this
// cannot be trusted to name a current question.
func (gs *GameSession) Valid() bool {
	return len(gs.Order) == len(gs.Items) && gs.Score >= 0 && gs.Score <= len(gs.Order)
}

// CurrentQuiz returns the question the cursor points at.
func (gs *GameSession) CurrentQuiz() *models.Quiz {
	return &gs.Items[gs.Order[gs.Score]]
}

// GameSessionStore persists per-visitor game sessions between requests.
// Get returns (nil, nil) when the visitor has no active session.
type GameSessionStore interface {
	Get(ctx context.Context, visitorID string) (*GameSession, error)
	Put(ctx context.Context, visitorID string, session *GameSession) error
	Delete(ctx context.Context, visitorID string) error
}

const sessionKeyPrefix = "game:"

// RedisSessionStore stores game sessions as JSON blobs in Redis with a
// TTL, so abandoned games expire on their own.
type RedisSessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		redis: client,
		ttl:   ttl,
	}
}

func (s *RedisSessionStore) Get(ctx context.Context, visitorID string) (*GameSession, error) {
	data, err := s.redis.Get(ctx, sessionKeyPrefix+visitorID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}

	var session GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, visitorID string, session *GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+visitorID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, visitorID string) error {
	if err := s.redis.Del(ctx, sessionKeyPrefix+visitorID).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}

	return nil
}
