package coingecko

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vitos/coingecko_coins/internal/domain"
)

const coinsListPath = "coins/list"

// BuildCoinsListURL returns {base}/coins/list with the optional
// include_platform and status parameters. It has no side effects.
func BuildCoinsListURL(cfg domain.ClientConfig) (string, error) {
	mainURL := strings.TrimRight(cfg.BaseURL, "/") + "/" + coinsListPath

	params := url.Values{}
	if cfg.IncludePlatform != nil {
		params.Set("include_platform", strconv.FormatBool(*cfg.IncludePlatform))
	}
	if cfg.Status != nil {
		status, err := domain.ParseCoinStatus(*cfg.Status)
		if err != nil {
			return "", err
		}
		params.Set("status", string(status))
	}

	// Encode sorts by key: include_platform always precedes status.
	if q := params.Encode(); q != "" {
		return mainURL + "?" + q, nil
	}
	return mainURL, nil
}
