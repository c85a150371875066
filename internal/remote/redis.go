package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/hagios/internal/journal"
	"github.com/redis/go-redis/v9"
)

// RedisRemote stores each user's completed set in a Redis set and journals
// in a hash keyed by module ID.
type RedisRemote struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Remote = (*RedisRemote)(nil)

// NewRedisRemote connects lazily to the Redis server at addr.
func NewRedisRemote(addr, password string, db int, logger *slog.Logger) *RedisRemote {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisRemoteClient(rdb, logger)
}

// NewRedisRemoteClient wraps an existing client.
func NewRedisRemoteClient(client *redis.Client, logger *slog.Logger) *RedisRemote {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RedisRemote{client: client, logger: logger}
}

func completedKey(userID string) string {
	return fmt.Sprintf("hagios:user:%s:completed", userID)
}

func journalsKey(userID string) string {
	return fmt.Sprintf("hagios:user:%s:journals", userID)
}

// Ping checks the connection.
func (r *RedisRemote) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisRemote) Close() error {
	return r.client.Close()
}

// Fetch reads the user's completed set and journals in one pipeline.
// Journals that fail to decode are skipped and logged.
func (r *RedisRemote) Fetch(ctx context.Context, userID string) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, ErrNoUser
	}

	var members *redis.StringSliceCmd
	var hash *redis.MapStringStringCmd
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		members = p.SMembers(ctx, completedKey(userID))
		hash = p.HGetAll(ctx, journalsKey(userID))
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis fetch: %w", err)
	}

	snap := Snapshot{
		Completed: members.Val(),
		Journals:  make(map[string]journal.Record, len(hash.Val())),
	}
	for moduleID, raw := range hash.Val() {
		var rec journal.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			r.logger.WarnContext(ctx, "skipping malformed remote journal",
				"user", userID, "module", moduleID, "error", err)
			continue
		}
		snap.Journals[moduleID] = rec
	}
	return snap, nil
}

// PushProgress adds completed to the user's remote set.
func (r *RedisRemote) PushProgress(ctx context.Context, userID string, completed []string) error {
	if userID == "" {
		return ErrNoUser
	}
	if len(completed) == 0 {
		return nil
	}
	members := make([]any, len(completed))
	for i, id := range completed {
		members[i] = id
	}
	if err := r.client.SAdd(ctx, completedKey(userID), members...).Err(); err != nil {
		return fmt.Errorf("redis push progress: %w", err)
	}
	return nil
}

// PushJournal overwrites the user's remote copy of one journal.
func (r *RedisRemote) PushJournal(ctx context.Context, userID, moduleID string, rec journal.Record) error {
	if userID == "" {
		return ErrNoUser
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode journal %s: %w", moduleID, err)
	}
	if err := r.client.HSet(ctx, journalsKey(userID), moduleID, string(b)).Err(); err != nil {
		return fmt.Errorf("redis push journal: %w", err)
	}
	return nil
}
