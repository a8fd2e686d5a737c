package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(testValkeyClient(t), "cattery-test")
	t.Cleanup(func() {
		s.Clear(context.Background())
		s.Close()
	})
	return s
}

func TestStoreSetGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, ok := s.GetRaw(ctx, "cats"); ok {
		t.Fatal("expected empty store")
	}

	if err := s.SetRaw(ctx, "cats", []byte(`[{"id":"cat_1"}]`)); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}

	raw, ok := s.GetRaw(ctx, "cats")
	if !ok {
		t.Fatal("expected value after SetRaw")
	}
	if string(raw) != `[{"id":"cat_1"}]` {
		t.Errorf("got %q", raw)
	}
}

func TestStoreNotifiesSubscribersOnce(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	changes := make(chan string, 10)
	s.Subscribe(func(collection string) { changes <- collection })

	if err := s.SetRaw(ctx, "faq", []byte("[]")); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}

	select {
	case col := <-changes:
		if col != "faq" {
			t.Errorf("notified with %q", col)
		}
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}

	// The pub/sub echo of our own message must not produce a second event.
	select {
	case col := <-changes:
		t.Errorf("duplicate notification for %q", col)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStoreCrossProcessNotification(t *testing.T) {
	client := testValkeyClient(t)
	a := NewStore(client, "cattery-test")
	b := NewStore(testValkeyClient(t), "cattery-test")
	t.Cleanup(func() {
		a.Clear(context.Background())
		a.Close()
		b.Close()
	})

	changes := make(chan string, 10)
	b.Subscribe(func(collection string) { changes <- collection })

	// Give b's pub/sub subscription a moment to establish.
	time.Sleep(200 * time.Millisecond)

	if err := a.SetRaw(context.Background(), "reviews", []byte("[]")); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}

	select {
	case col := <-changes:
		if col != "reviews" {
			t.Errorf("notified with %q", col)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no cross-process notification received")
	}
}

func TestStoreClear(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.SetRaw(ctx, "cats", []byte("[]"))
	s.SetRaw(ctx, "faq", []byte("[]"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := s.GetRaw(ctx, "cats"); ok {
		t.Error("expected cats gone after Clear")
	}
	if _, ok := s.GetRaw(ctx, "faq"); ok {
		t.Error("expected faq gone after Clear")
	}
}
