package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store is the local cache tier. Every collection lives under its own key so
// partial reads stay fast even when the aggregate snapshot is absent, and
// every successful write publishes a change notification: in-process
// subscribers are called directly, other processes sharing the same Valkey
// receive the event over pub/sub.
type Store struct {
	client  *redis.Client
	prefix  string
	channel string

	// senderID lets the pub/sub listener drop our own messages, so
	// in-process subscribers see exactly one event per local write.
	senderID string

	mu   sync.Mutex
	subs []func(collection string)

	pubsub *redis.PubSub
	done   chan struct{}
}

// NewStore creates a cache store namespaced under the given prefix and
// starts the background pub/sub listener for cross-process notifications.
func NewStore(client *redis.Client, prefix string) *Store {
	s := &Store{
		client:   client,
		prefix:   prefix,
		channel:  prefix + ":updates",
		senderID: uuid.NewString(),
		done:     make(chan struct{}),
	}
	s.pubsub = client.Subscribe(context.Background(), s.channel)
	go s.listen()
	return s
}

// GetRaw returns the serialized value of a collection. It never fails: a
// missing key, a connection error, anything at all reads as "not present"
// and is logged, never surfaced.
func (s *Store) GetRaw(ctx context.Context, collection string) ([]byte, bool) {
	val, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache get failed", "collection", collection, "error", err)
		return nil, false
	}
	return val, true
}

// SetRaw atomically replaces the serialized value of a collection and fires
// a change notification. The single-key SET keeps each collection write
// all-or-nothing.
func (s *Store) SetRaw(ctx context.Context, collection string, val []byte) error {
	if err := s.client.Set(ctx, s.key(collection), val, 0).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", collection, err)
	}
	if err := s.client.Publish(ctx, s.channel, s.senderID+"|"+collection).Err(); err != nil {
		slog.Warn("cache notify failed", "collection", collection, "error", err)
	}
	s.notify(collection)
	return nil
}

// Subscribe registers an observer called with the collection name after
// every write, whether it happened in this process or another one.
func (s *Store) Subscribe(fn func(collection string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Clear removes every key in the store's namespace. Used by tests and the
// admin reset flow.
func (s *Store) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+":*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache clear scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache clear delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close stops the pub/sub listener. The Valkey client itself is owned by
// the caller.
func (s *Store) Close() error {
	close(s.done)
	return s.pubsub.Close()
}

func (s *Store) key(collection string) string {
	return s.prefix + ":" + collection
}

func (s *Store) notify(collection string) {
	s.mu.Lock()
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(collection)
	}
}

// listen relays change notifications published by other processes to the
// in-process subscribers. Messages carry "senderID|collection"; our own are
// skipped because SetRaw already notified directly.
func (s *Store) listen() {
	ch := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			sender, collection, found := strings.Cut(msg.Payload, "|")
			if !found || sender == s.senderID {
				continue
			}
			s.notify(collection)
		}
	}
}
