package derive

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/hd-derive/internal/model"

	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent tool processes in DeriveCoins
const maxParallel = 4

// DeriveCoins derives base for every coin and returns the records keyed by coin.
// base.Coin is ignored. The first failure cancels the remaining runs.
func DeriveCoins(ctx context.Context, d Deriver, base model.DerivationRequest, coins []string) (map[model.Coin][]model.WalletRecord, error) {
	unique := make([]model.Coin, 0, len(coins))
	seen := make(map[model.Coin]bool, len(coins))
	for _, c := range coins {
		coin := model.Coin(strings.ToUpper(strings.TrimSpace(c)))
		if !coin.Supported() {
			return nil, fmt.Errorf("%w: unsupported coin %q", ErrInvalidRequest, c)
		}
		if seen[coin] {
			continue
		}
		seen[coin] = true
		unique = append(unique, coin)
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: no coins given", ErrInvalidRequest)
	}

	var mu sync.Mutex
	result := make(map[model.Coin][]model.WalletRecord, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, coin := range unique {
		coin := coin
		req := base
		req.Coin = coin
		g.Go(func() error {
			records, err := d.Derive(gctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", coin, err)
			}
			mu.Lock()
			result[coin] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
