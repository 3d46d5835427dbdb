package coingecko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coingecko_coins/internal/domain"
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestBuildCoinsListURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ClientConfig
		want string
	}{
		{
			name: "no params",
			cfg:  domain.ClientConfig{BaseURL: "https://x"},
			want: "https://x/coins/list",
		},
		{
			name: "include platform true",
			cfg:  domain.ClientConfig{BaseURL: "https://x", IncludePlatform: boolPtr(true)},
			want: "https://x/coins/list?include_platform=true",
		},
		{
			name: "include platform false",
			cfg:  domain.ClientConfig{BaseURL: "https://x", IncludePlatform: boolPtr(false)},
			want: "https://x/coins/list?include_platform=false",
		},
		{
			name: "mixed case status",
			cfg:  domain.ClientConfig{BaseURL: "https://x", Status: strPtr("Active")},
			want: "https://x/coins/list?status=active",
		},
		{
			name: "both params",
			cfg:  domain.ClientConfig{BaseURL: "https://x", IncludePlatform: boolPtr(true), Status: strPtr("INACTIVE")},
			want: "https://x/coins/list?include_platform=true&status=inactive",
		},
		{
			name: "trailing slashes",
			cfg:  domain.ClientConfig{BaseURL: "https://x//"},
			want: "https://x/coins/list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCoinsListURL(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.cfg.IncludePlatform == nil && tt.cfg.Status == nil {
				assert.NotContains(t, got, "?")
			}
		})
	}
}

func TestBuildCoinsListURL_TrailingSlashIsNormalized(t *testing.T) {
	withSlash, err := domain.NewClientConfig("https://x/", nil, nil)
	require.NoError(t, err)
	without, err := domain.NewClientConfig("https://x", nil, nil)
	require.NoError(t, err)

	a, err := BuildCoinsListURL(withSlash)
	require.NoError(t, err)
	b, err := BuildCoinsListURL(without)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildCoinsListURL_InvalidStatus(t *testing.T) {
	for _, status := range []string{"banned", ""} {
		_, err := BuildCoinsListURL(domain.ClientConfig{BaseURL: "https://x", Status: strPtr(status)})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		assert.Contains(t, err.Error(), `"`+status+`"`)
	}
}
