// Package kvk is the client for the Dutch chamber-of-commerce company
// registry used during employer onboarding. Search results are cached in
// Redis for a short while since the registry rate-limits aggressively.
package kvk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Service struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
	Cache   *redis.Client
}

func NewService(apiKey, baseURL string, cache *redis.Client) *Service {
	if baseURL == "" {
		baseURL = "https://api.kvk.nl/api/v1"
	}
	return &Service{
		Client:  &http.Client{Timeout: 15 * time.Second},
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Cache:   cache,
	}
}

// Company is one registry search hit.
type Company struct {
	KVKNumber string `json:"kvkNummer"`
	Name      string `json:"naam"`
	LegalForm string `json:"rechtsvorm"`
	Street    string `json:"straatnaam"`
	City      string `json:"plaats"`
	Website   string `json:"website"`
}

type searchResponse struct {
	Results []Company `json:"resultaten"`
	Total   int       `json:"totaal"`
}

const cacheTTL = 10 * time.Minute

// Search queries the registry by name or KVK number.
func (s *Service) Search(ctx context.Context, query string) ([]Company, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	cacheKey := "kvk:search:" + strings.ToLower(query)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []Company
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	u := fmt.Sprintf("%s/zoeken?naam=%s", s.BaseURL, url.QueryEscape(query))
	if isKVKNumber(query) {
		u = fmt.Sprintf("%s/zoeken?kvkNummer=%s", s.BaseURL, url.QueryEscape(query))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kvk search failed: status %d: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("kvk search: decode response: %w", err)
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(out.Results); err == nil {
			s.Cache.Set(ctx, cacheKey, raw, cacheTTL)
		}
	}
	return out.Results, nil
}

func isKVKNumber(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// EmailDomainMatches reports whether the e-mail's domain equals the
// employer's registered domain (case-insensitive, with or without www).
// The join flow uses it to decide between instant join and verification.
func EmailDomainMatches(email, domain string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if email == "" || domain == "" {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	got := strings.TrimPrefix(email[at+1:], "www.")
	domain = strings.TrimPrefix(domain, "www.")
	return got == domain
}
