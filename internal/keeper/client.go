// Package keeper reads the live membership of a ClickHouse Keeper ensemble.
package keeper

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client queries keepers. It is read-only and keeps no connection between
// calls.
type Client struct {
	config
}

func New(opts ...Option) (*Client, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Client{config: cfg}, nil
}

// FetchMembership returns the ensemble membership as seen by the keeper at
// addr.
func (c *Client) FetchMembership(ctx context.Context, addr string) (Membership, error) {
	data, err := c.querier.Get(ctx, addr, ConfigPath)
	if err != nil {
		return nil, err
	}
	m, err := ParseMembership(string(data))
	if err != nil {
		return nil, errors.WithMessagef(err, "keeper: %s", addr)
	}
	c.logger.Debug("fetched membership", zap.String("addr", addr), zap.Int("size", len(m)))
	return m, nil
}
