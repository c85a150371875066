package remote

import (
	"context"
	"os"
	"testing"

	"github.com/abhisek/hagios/internal/journal"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set HAGIOS_TEST_REDIS=host:port to run against a live server.
func redisRemote(t *testing.T) *RedisRemote {
	t.Helper()
	addr := os.Getenv("HAGIOS_TEST_REDIS")
	if addr == "" {
		t.Skip("HAGIOS_TEST_REDIS not set")
	}
	r := NewRedisRemote(addr, "", 0, nil)
	t.Cleanup(func() { r.Close() })
	require.NoError(t, r.Ping(context.Background()))
	return r
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := redisRemote(t)
	user := "test-" + uuid.NewString()
	t.Cleanup(func() {
		r.client.Del(ctx, completedKey(user), journalsKey(user))
	})

	snap, err := r.Fetch(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, snap.Completed)
	assert.Empty(t, snap.Journals)

	require.NoError(t, r.PushProgress(ctx, user, []string{"1", "2"}))
	require.NoError(t, r.PushProgress(ctx, user, []string{"2", "3"}))
	rec := journal.Record{Answers: [4]string{"um", "dois"}, QuizScorePercent: journal.Score(75)}
	require.NoError(t, r.PushJournal(ctx, user, "1", rec))
	require.NoError(t, r.client.HSet(ctx, journalsKey(user), "9", "{broken").Err())

	snap, err = r.Fetch(ctx, user)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, snap.Completed)
	assert.Equal(t, map[string]journal.Record{"1": rec}, snap.Journals)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "hagios:user:ana:completed", completedKey("ana"))
	assert.Equal(t, "hagios:user:ana:journals", journalsKey("ana"))
}

func TestRedisRequiresUser(t *testing.T) {
	r := NewRedisRemoteClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), nil)
	defer r.Close()

	_, err := r.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoUser)
	assert.ErrorIs(t, r.PushProgress(context.Background(), "", []string{"1"}), ErrNoUser)
	assert.ErrorIs(t, r.PushJournal(context.Background(), "", "1", journal.Record{}), ErrNoUser)
}
