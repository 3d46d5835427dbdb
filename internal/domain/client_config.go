package domain

import (
	"fmt"
	"strings"
)

type CoinStatus string

const (
	StatusActive   CoinStatus = "active"
	StatusInactive CoinStatus = "inactive"
)

// ParseCoinStatus matches s case-insensitively against the statuses the
// coins list endpoint accepts.
func ParseCoinStatus(s string) (CoinStatus, error) {
	switch st := CoinStatus(strings.ToLower(s)); st {
	case StatusActive, StatusInactive:
		return st, nil
	default:
		return "", fmt.Errorf("%w: invalid status %q, must be %q or %q", ErrInvalidArgument, s, StatusActive, StatusInactive)
	}
}

// ClientConfig describes one coins list request.
// Nil pointers mean the parameter is not sent.
type ClientConfig struct {
	BaseURL         string
	IncludePlatform *bool
	Status          *string
}

func NewClientConfig(baseURL string, includePlatform *bool, status *string) (ClientConfig, error) {
	cfg := ClientConfig{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		IncludePlatform: includePlatform,
		Status:          status,
	}
	if status != nil {
		if _, err := ParseCoinStatus(*status); err != nil {
			return ClientConfig{}, err
		}
	}
	return cfg, nil
}
