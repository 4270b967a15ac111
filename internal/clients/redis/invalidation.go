package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

// InvalidationMessage is broadcast after any write to brand, character,
// event, theme or subplot state so every engine instance drops its cached
// bundles for that brand.
type InvalidationMessage struct {
	BrandID uuid.UUID `json:"brand_id"`
	Scope   string    `json:"scope,omitempty"`
	Source  string    `json:"source,omitempty"`
}

// InvalidationBus fans brand invalidations out across processes.
type InvalidationBus interface {
	Publish(ctx context.Context, msg InvalidationMessage) error
	StartForwarder(ctx context.Context, onMsg func(m InvalidationMessage)) error
	Close() error
}

type invalidationBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewInvalidationBus(log *logger.Logger) (InvalidationBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_INVALIDATION_CHANNEL"))
	if ch == "" {
		ch = "brand-invalidation"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &invalidationBus{
		log:     log.With("client", "RedisInvalidationBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *invalidationBus) Publish(ctx context.Context, msg InvalidationMessage) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("invalidation bus not initialized")
	}
	if msg.BrandID == uuid.Nil {
		return fmt.Errorf("brand id required")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *invalidationBus) StartForwarder(ctx context.Context, onMsg func(m InvalidationMessage)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("invalidation bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	// ensures the subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var msg InvalidationMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("bad invalidation payload", "error", err)
					continue
				}
				if msg.BrandID == uuid.Nil {
					continue
				}
				onMsg(msg)
			}
		}
	}()

	return nil
}

func (b *invalidationBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
