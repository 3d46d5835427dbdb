package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vitos/coingecko_coins/internal/domain"
	"go.uber.org/zap"
)

var ErrHistoryDisabled = errors.New("snapshot history is disabled, pass a database path")

type CoinService struct {
	lister  domain.CoinLister
	store   domain.SnapshotRepository // nil when history is disabled
	logger  *zap.Logger
	timeNow func() time.Time // For testing
	newID   func() string
}

func NewCoinService(lister domain.CoinLister, store domain.SnapshotRepository, logger *zap.Logger) *CoinService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoinService{
		lister:  lister,
		store:   store,
		logger:  logger,
		timeNow: time.Now,
		newID:   uuid.NewString,
	}
}

// ListAllowed fetches the coins list once and keeps only allowList.
// When a store is configured the result is recorded as a snapshot.
func (s *CoinService) ListAllowed(ctx context.Context, cfg domain.ClientConfig, allowList []string) (*domain.Snapshot, error) {
	coins, err := s.lister.ListCoins(ctx, cfg)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		RunID:     s.newID(),
		BaseURL:   cfg.BaseURL,
		Total:     len(coins),
		FetchedAt: s.timeNow().UTC(),
		Rows:      FilterByIDs(coins, allowList),
	}

	s.logger.Info("Coins list filtered",
		zap.String("run_id", snap.RunID),
		zap.Int("total", snap.Total),
		zap.Int("matched", len(snap.Rows)),
		zap.Strings("allow_list", allowList))

	if missing := missingIDs(snap.Rows, allowList); len(missing) > 0 {
		s.logger.Warn("Allow-listed coins not found in response", zap.Strings("ids", missing))
	}

	if s.store != nil {
		if err := s.store.SaveSnapshot(ctx, snap); err != nil {
			return nil, fmt.Errorf("failed to save snapshot: %w", err)
		}
		s.logger.Debug("Snapshot saved", zap.String("run_id", snap.RunID))
	}

	return snap, nil
}

// History returns up to limit stored runs, newest first.
func (s *CoinService) History(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidArgument, limit)
	}
	return s.store.ListSnapshots(ctx, limit)
}

// Snapshot loads one stored run with its rows.
func (s *CoinService) Snapshot(ctx context.Context, runID string) (*domain.Snapshot, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	if runID == "" {
		return nil, fmt.Errorf("%w: run id can not be empty", domain.ErrInvalidArgument)
	}
	return s.store.GetSnapshot(ctx, runID)
}

func missingIDs(rows []domain.CoinRow, allowList []string) []string {
	found := make(map[string]bool, len(rows))
	for _, r := range rows {
		found[r.Coin.ID] = true
	}
	var missing []string
	for _, id := range allowList {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
