package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vitos/coingecko_coins/internal/domain"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Coins writes rows in the given format. Platforms are only shown when
// withPlatforms is set, since the API omits them otherwise.
func Coins(w io.Writer, format string, rows []domain.CoinRow, withPlatforms bool) error {
	switch format {
	case FormatTable, "":
		return coinsTable(w, rows, withPlatforms)
	case FormatJSON:
		return coinsJSON(w, rows)
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidArgument, format)
	}
}

func coinsTable(w io.Writer, rows []domain.CoinRow, withPlatforms bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "\tid\tsymbol\tname"
	if withPlatforms {
		header += "\tplatforms"
	}
	fmt.Fprintln(tw, header)

	for _, r := range rows {
		line := fmt.Sprintf("%d\t%s\t%s\t%s", r.Index, r.Coin.ID, r.Coin.Symbol, r.Coin.Name)
		if withPlatforms {
			line += "\t" + formatPlatforms(r.Coin.Platforms)
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func coinsJSON(w io.Writer, rows []domain.CoinRow) error {
	coins := make([]domain.CoinRecord, 0, len(rows))
	for _, r := range rows {
		coins = append(coins, r.Coin)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(coins)
}

func formatPlatforms(p map[string]string) string {
	if len(p) == 0 {
		return "{}"
	}
	chains := make([]string, 0, len(p))
	for chain := range p {
		chains = append(chains, chain)
	}
	sort.Strings(chains)

	parts := make([]string, 0, len(chains))
	for _, chain := range chains {
		parts = append(parts, chain+": "+p[chain])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Snapshots writes a run history table.
func Snapshots(w io.Writer, snaps []*domain.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run_id\tfetched_at\ttotal\tbase_url")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.RunID, s.FetchedAt.UTC().Format("2006-01-02 15:04:05"), s.Total, s.BaseURL)
	}
	return tw.Flush()
}
