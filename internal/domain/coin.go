package domain

import "time"

// CoinRecord is one entry of the CoinGecko coins list. Only ID is interpreted.
type CoinRecord struct {
	ID        string            `json:"id"`
	Symbol    string            `json:"symbol"`
	Name      string            `json:"name"`
	Platforms map[string]string `json:"platforms,omitempty"`
}

// CoinCollection keeps the order the API returned.
type CoinCollection []CoinRecord

// CoinRow is a record that survived filtering, together with its position
// in the unfiltered response.
type CoinRow struct {
	Index int        `json:"index"`
	Coin  CoinRecord `json:"coin"`
}

// Snapshot is a stored, already filtered run.
type Snapshot struct {
	RunID     string
	BaseURL   string
	Total     int // size of the unfiltered response
	FetchedAt time.Time
	Rows      []CoinRow
}
