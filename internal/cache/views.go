package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const invoiceViewPrefix = "views:invoices:"

// Views caches rendered invoice list pages in redis. The mutation pipeline
// invalidates the whole prefix so the next read recomputes from the store.
type Views struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViews(rdb *redis.Client, ttl time.Duration) *Views {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Views{rdb: rdb, ttl: ttl}
}

// InvoicePageKey builds the cache key for one (query, page) view.
func InvoicePageKey(query string, page int) string {
	return invoiceViewPrefix + query + ":" + strconv.Itoa(page)
}

// GetInvoicePage returns a cached view payload. Cache errors degrade to a
// miss: the store stays the source of truth.
func (v *Views) GetInvoicePage(ctx context.Context, query string, page int) ([]byte, bool) {
	payload, err := v.rdb.Get(ctx, InvoicePageKey(query, page)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetInvoicePage stores a rendered view with the configured TTL. Best effort.
func (v *Views) SetInvoicePage(ctx context.Context, query string, page int, payload []byte) {
	_ = v.rdb.Set(ctx, InvoicePageKey(query, page), payload, v.ttl).Err()
}

// InvalidateInvoices deletes every cached invoice view. Runs after each
// successful mutation.
func (v *Views) InvalidateInvoices(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := v.rdb.Scan(ctx, cursor, invoiceViewPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := v.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
