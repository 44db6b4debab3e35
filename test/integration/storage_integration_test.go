package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"intellinote-be/pkg/database"
	"intellinote-be/pkg/storage"
)

func loadEnv(t *testing.T) {
	t.Helper()
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
}

func TestRedisStore(t *testing.T) {
	loadEnv(t)

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("Failed to parse Redis URL: %v", err)
	}
	rdb := redis.NewClient(opt)
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		t.Skipf("Redis not reachable: %v", err)
	}

	store := storage.NewRedisStore(rdb)
	key := "intellinote-integration-test"
	defer rdb.Del(ctx, key)

	assert.NoError(t, store.Set(ctx, key, []byte(`[{"id":"1"}]`)))
	got, err := store.Get(ctx, key)
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	assert.NoError(t, store.Set(ctx, key, []byte(`[]`)))
	got, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}

func TestGormStore(t *testing.T) {
	loadEnv(t)

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	store, err := storage.NewGormStore(gormDB)
	assert.NoError(t, err)

	ctx := context.Background()
	key := "intellinote-integration-test"
	defer gormDB.Exec("DELETE FROM storage_slots WHERE key = ?", key)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, store.Set(ctx, key, []byte(`[{"id":"1"}]`)))
	got, err := store.Get(ctx, key)
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	// Upsert overwrites
	assert.NoError(t, store.Set(ctx, key, []byte(`[]`)))
	got, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}
