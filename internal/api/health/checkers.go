package health

import (
	"context"
	"fmt"
)

// Pinger interface for backends that support ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreChecker checks conversation store connectivity.
type StoreChecker struct {
	pinger Pinger
}

// NewStoreChecker creates a new store health checker.
func NewStoreChecker(p Pinger) *StoreChecker {
	return &StoreChecker{pinger: p}
}

// Name returns the checker name.
func (c *StoreChecker) Name() string {
	return "store"
}

// Check verifies the store is accessible.
func (c *StoreChecker) Check(ctx context.Context) error {
	if c.pinger == nil {
		return fmt.Errorf("store not configured")
	}
	return c.pinger.Ping(ctx)
}
