package domain

import "context"

// CoinLister fetches the coins list described by cfg.
type CoinLister interface {
	ListCoins(ctx context.Context, cfg ClientConfig) (CoinCollection, error)
}

// SnapshotRepository defines storage operations for run history.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	ListSnapshots(ctx context.Context, limit int) ([]*Snapshot, error)
	GetSnapshot(ctx context.Context, runID string) (*Snapshot, error)
}
