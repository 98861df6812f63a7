package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aoty-data/harvester/internal/testutil"
	"github.com/aoty-data/harvester/pkg/cache"
	"github.com/aoty-data/harvester/pkg/fetch"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// TestPageCacheFlow tests the complete fetch flow: cache miss → site fetch →
// cache fill → cache hit without a second site request.
func TestPageCacheFlow(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockSite()
	defer mock.Close()

	mock.SetHTML("/album/1-cached.php", testutil.AlbumPage{
		Artist: "Artist", Album: "Cached", DateText: "May 5, 2005",
	}.HTML())

	client := fetch.New(fetch.DefaultConfig())
	client.SetCache(cache.NewManager(redisClient, time.Hour))

	ctx := context.Background()
	url := mock.URL() + "/album/1-cached.php"

	first, err := client.Get(ctx, url)
	if err != nil {
		t.Fatalf("First Get failed: %v", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Fatalf("requests = %d, want 1", mock.GetRequestCount())
	}

	second, err := client.Get(ctx, url)
	if err != nil {
		t.Fatalf("Second Get failed: %v", err)
	}
	if second != first {
		t.Error("Cached body differs from fetched body")
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("requests = %d, want 1 (second Get served from cache)", mock.GetRequestCount())
	}
}

// TestPageCacheExpiry tests that an expired entry is treated as a miss and
// the page is refetched.
func TestPageCacheExpiry(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	manager := cache.NewManager(redisClient, time.Hour)
	ctx := context.Background()
	key := cache.Key{URL: "https://host/album/2-expiring.php"}

	// A pre-expired entry must not be served.
	entry := &cache.Entry{
		Body:       []byte("<html>stale</html>"),
		StatusCode: 200,
		FetchedAt:  time.Now().Add(-2 * time.Hour),
		Expires:    time.Now().Add(50 * time.Millisecond),
	}
	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := manager.Get(ctx, key); err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := manager.Get(ctx, key); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}

// TestPageCacheRoundtrip tests Put, Get and Delete against a live Redis.
func TestPageCacheRoundtrip(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	manager := cache.NewManager(redisClient, time.Hour)
	ctx := context.Background()
	key := cache.Key{URL: "https://host/1974/releases/1/?type=lp"}
	body := []byte("<html>listing</html>")

	if err := manager.Put(ctx, key, body, 200); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(entry.Body) != string(body) {
		t.Errorf("Body = %q, want %q", entry.Body, body)
	}
	if entry.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", entry.StatusCode)
	}

	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Get after delete = %v, want ErrCacheMiss", err)
	}
}
