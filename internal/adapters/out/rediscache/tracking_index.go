// Package rediscache keeps the tracking-number index in Redis so label scans
// resolve without touching the order tables.
package rediscache

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fulfillment:tracking:"

// TrackingIndex implements ports.TrackingNumberIndex. Entries expire after ttl;
// a zero ttl keeps them forever.
type TrackingIndex struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *TrackingIndex {
	return &TrackingIndex{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl: ttl,
	}
}

func (i *TrackingIndex) Lookup(ctx context.Context, trackingNumber string) (kernel.UUID, bool, error) {
	val, err := i.c.Get(ctx, keyPrefix+trackingNumber).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, errors.Wrap(err, "redis get")
	}

	id, err := kernel.UUIDFromString(val)
	if err != nil {
		return kernel.UUID{}, false, errors.Wrapf(err, "tracking index entry %s", trackingNumber)
	}
	return id, true, nil
}

func (i *TrackingIndex) Put(ctx context.Context, trackingNumber string, orderID kernel.UUID) error {
	if err := i.c.Set(ctx, keyPrefix+trackingNumber, orderID.String(), i.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Ping checks the connection at startup.
func (i *TrackingIndex) Ping(ctx context.Context) error {
	if err := i.c.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

func (i *TrackingIndex) Close() error {
	return i.c.Close()
}
