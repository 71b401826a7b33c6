// Package cache provides a Redis-backed cache for account views served by
// the HTTP read path. The processor's write path never consults it: balance
// decisions always read the store of record.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// AccountView is the JSON shape cached and served for account reads.
type AccountView struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Currency   string `json:"currency"`
	Balance    string `json:"balance"`
}

// AccountCache stores account views keyed by account number, with a TTL.
// All failures degrade to a miss: the caller falls back to the store and the
// error is only logged.
type AccountCache struct {
	client *Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewAccountCache creates an AccountCache backed by the given client.
// Pass ttl 0 for keys that should not expire.
func NewAccountCache(client *Client, ttl time.Duration, logger *slog.Logger) *AccountCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountCache{client: client, ttl: ttl, logger: logger}
}

func (c *AccountCache) key(number string) string {
	return "account:" + number
}

// Get retrieves a cached account view. Returns (nil, false) on any miss or
// deserialization error.
func (c *AccountCache) Get(ctx context.Context, number string) (*AccountView, bool) {
	data, err := c.client.Get(ctx, c.key(number)).Result()
	if err != nil {
		return nil, false
	}
	var view AccountView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, false
	}
	return &view, true
}

// Set stores an account view. A failed cache write is non-fatal.
func (c *AccountCache) Set(ctx context.Context, view *AccountView) {
	data, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn("account cache marshal error", "number", view.Number, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(view.Number), data, c.ttl).Err(); err != nil {
		c.logger.Warn("account cache write error", "number", view.Number, "error", err)
	}
}

// Invalidate removes the cached view for an account number. Called after a
// balance mutation so the read path never serves a stale balance past the TTL.
func (c *AccountCache) Invalidate(ctx context.Context, number string) {
	if err := c.client.Del(ctx, c.key(number)).Err(); err != nil {
		c.logger.Warn("account cache invalidate error", "number", number, "error", err)
	}
}
