package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	redisclient "github.com/onekill0503/dnd-bot/internal/redis"
)

const (
	sessionKeyPrefix = "dnd_session:"
	scanBatchSize    = 100

	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// RedisConfig contains configuration for the Redis session repository.
type RedisConfig struct {
	Client redisclient.Client
	// TTL is the sliding expiration (optional, defaults to DefaultTTL)
	TTL time.Duration
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := sessionKey(input.ID)
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if stderrors.Is(err, redisclient.Nil) {
			return nil, errors.SessionNotFound(input.ID)
		}
		return nil, errors.PersistenceFailed(err)
	}

	s, err := decodeSession([]byte(result))
	if err != nil {
		return nil, err
	}

	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		slog.Warn("Failed to refresh session TTL", "session_id", input.ID, "error", err)
	}

	return &GetOutput{Session: s}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.PersistenceFailed(err)
	}

	if err := r.client.Set(ctx, sessionKey(input.Session.SessionID), data, r.ttl).Err(); err != nil {
		return nil, errors.PersistenceFailed(err)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	if err := r.client.Del(ctx, sessionKey(input.ID)).Err(); err != nil {
		return nil, errors.PersistenceFailed(err)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) Touch(ctx context.Context, input TouchInput) (*TouchOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	ok, err := r.client.Expire(ctx, sessionKey(input.ID), r.ttl).Result()
	if err != nil {
		return nil, errors.PersistenceFailed(err)
	}
	if !ok {
		return nil, errors.SessionNotFound(input.ID)
	}

	return &TouchOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	var (
		sessions []*game.Session
		cursor   uint64
	)

	for {
		keys, next, err := r.client.Scan(ctx, cursor, sessionKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, errors.PersistenceFailed(err)
		}

		for _, key := range keys {
			result, err := r.client.Get(ctx, key).Result()
			if err != nil {
				if stderrors.Is(err, redisclient.Nil) {
					// expired between scan and get
					continue
				}
				return nil, errors.PersistenceFailed(err)
			}

			s, err := decodeSession([]byte(result))
			if err != nil {
				slog.Warn("Skipping unreadable session snapshot", "key", key, "error", err)
				continue
			}
			sessions = append(sessions, s)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return &ListOutput{Sessions: sessions}, nil
}

// decodeSession parses a snapshot and rejects records that break session invariants
func decodeSession(data []byte) (*game.Session, error) {
	var s game.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.PersistenceFailed(err)
	}
	if err := validateSnapshot(&s); err != nil {
		return nil, errors.PersistenceFailed(err)
	}
	return &s, nil
}

func validateSnapshot(s *game.Session) error {
	vb := errors.NewValidationBuilder()

	if s.SessionID == "" {
		vb.RequiredField("sessionId")
	}
	switch s.Status {
	case game.StatusCharacterCreation, game.StatusActive, game.StatusEnded:
	default:
		vb.InvalidField("status", "unknown session status")
	}
	if s.MaxPlayers < 1 {
		vb.InvalidField("maxPlayers", "must be positive")
	}
	for _, pc := range s.Players.Values() {
		if pc == nil {
			vb.InvalidField("players", "contains an empty character")
			break
		}
	}

	return vb.Build()
}
