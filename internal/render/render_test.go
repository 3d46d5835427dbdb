package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coingecko_coins/internal/domain"
)

var rows = []domain.CoinRow{
	{Index: 1540, Coin: domain.CoinRecord{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", Platforms: map[string]string{}}},
	{Index: 3002, Coin: domain.CoinRecord{ID: "ethereum", Symbol: "eth", Name: "Ethereum",
		Platforms: map[string]string{"optimistic-ethereum": "0x42", "arbitrum-one": "0x82"}}},
}

func TestCoins_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Coins(&buf, FormatTable, rows, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"id", "symbol", "name"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1540", "bitcoin", "btc", "Bitcoin"}, strings.Fields(lines[1]))
	assert.NotContains(t, buf.String(), "platforms")
}

func TestCoins_TableWithPlatforms(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Coins(&buf, FormatTable, rows, true))

	out := buf.String()
	assert.Contains(t, out, "platforms")
	assert.Contains(t, out, "{arbitrum-one: 0x82, optimistic-ethereum: 0x42}")
	assert.Contains(t, out, "{}")
}

func TestCoins_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Coins(&buf, FormatJSON, rows[:1], false))

	var got []domain.CoinRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "bitcoin", got[0].ID)

	buf.Reset()
	require.NoError(t, Coins(&buf, FormatJSON, nil, false))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCoins_UnknownFormat(t *testing.T) {
	err := Coins(&bytes.Buffer{}, "csv", rows, false)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSnapshots(t *testing.T) {
	var buf bytes.Buffer
	err := Snapshots(&buf, []*domain.Snapshot{{
		RunID:     "abc",
		BaseURL:   "https://x",
		Total:     17000,
		FetchedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2024-01-02 03:04:05")
	assert.Contains(t, buf.String(), "17000")
}
