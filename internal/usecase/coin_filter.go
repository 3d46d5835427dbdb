package usecase

import "github.com/vitos/coingecko_coins/internal/domain"

// DefaultAllowList is the set of coins shown when no other list is configured.
var DefaultAllowList = []string{"bitcoin", "ethereum", "solana", "cardano", "bitcoin-cash"}

// FilterByIDs keeps the records whose ID is in ids, in response order.
// Each row remembers its position in the unfiltered collection.
func FilterByIDs(coins domain.CoinCollection, ids []string) []domain.CoinRow {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	var rows []domain.CoinRow
	for i, c := range coins {
		if _, ok := allowed[c.ID]; ok {
			rows = append(rows, domain.CoinRow{Index: i, Coin: c})
		}
	}
	return rows
}
