package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/sukalov/romagic/internal/lyrics"
)

const (
	keyPrefix = "lyrics:"
	statsKey  = "lyrics:stats"
)

// NewClient connects to redis. A bare host:port address is dialed over TLS
// as the default user; full redis:// or rediss:// URLs are used as given.
func NewClient(address, password string) (*redisClient.Client, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("redis address required")
	}
	url := address
	if !strings.Contains(address, "://") {
		url = fmt.Sprintf("rediss://default:%s@%s", password, address)
	}
	opt, err := redisClient.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if password != "" && opt.Password == "" {
		opt.Password = password
	}
	return redisClient.NewClient(opt), nil
}

// LyricsCache keeps raw lyrics in redis with an expiry.
type LyricsCache struct {
	client *redisClient.Client
	ttl    time.Duration
}

var _ lyrics.Cache = (*LyricsCache)(nil)

// NewLyricsCache creates a cache. A zero ttl keeps entries forever.
func NewLyricsCache(client *redisClient.Client, ttl time.Duration) *LyricsCache {
	return &LyricsCache{client: client, ttl: ttl}
}

// Get retrieves cached lyrics and counts the hit or miss.
func (c *LyricsCache) Get(ctx context.Context, key string) (lyrics.Raw, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redisClient.Nil {
			c.count(ctx, "miss")
			return lyrics.Raw{}, false, nil
		}
		return lyrics.Raw{}, false, err
	}
	var raw lyrics.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return lyrics.Raw{}, false, fmt.Errorf("failed to decode cached lyrics: %w", err)
	}
	c.count(ctx, "hit")
	return raw, true, nil
}

// Set stores lyrics under key.
func (c *LyricsCache) Set(ctx context.Context, key string, raw lyrics.Raw) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

func (c *LyricsCache) count(ctx context.Context, field string) {
	// Best effort; a failed counter never fails the lookup.
	_ = c.client.HIncrBy(ctx, statsKey, field, 1).Err()
}

// Stats returns the hit and miss counters.
func (c *LyricsCache) Stats(ctx context.Context) (map[string]int, error) {
	result := make(map[string]int)
	raw, err := c.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		if err == redisClient.Nil {
			return result, nil
		}
		return nil, err
	}
	for field, count := range raw {
		countInt, err := strconv.Atoi(count)
		if err != nil {
			continue // skip invalid counts
		}
		result[field] = countInt
	}
	return result, nil
}
