package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"pasarumkm/internal/domain"
)

// Loader reads the public merchant directory from a local JSON fixture,
// or from a remote URL when one is configured. The remote fetch sits
// behind a circuit breaker; while the breaker is open the last good copy
// keeps being served.
type Loader struct {
	path     string
	url      string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[[]domain.Merchant]
	keywords domain.KeywordTable
	log      *logrus.Logger

	mu     sync.RWMutex
	cached []domain.Merchant
	loaded bool
}

func NewLoader(path, url string, logger *logrus.Logger) *Loader {
	settings := gobreaker.Settings{
		Name:    "directory-fetch",
		Timeout: 30 * time.Second,
	}
	return &Loader{
		path:     path,
		url:      url,
		client:   &http.Client{Timeout: 10 * time.Second},
		breaker:  gobreaker.NewCircuitBreaker[[]domain.Merchant](settings),
		keywords: domain.DefaultKeywordTable(),
		log:      logger,
	}
}

// Merchants returns the directory entries, fetching them on first use.
// Once loaded, fetch failures degrade to the cached copy instead of an
// error.
func (l *Loader) Merchants(ctx context.Context) ([]domain.Merchant, error) {
	l.mu.RLock()
	if l.loaded && l.url == "" {
		cached := l.cached
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	var (
		merchants []domain.Merchant
		err       error
	)
	if l.url != "" {
		merchants, err = l.breaker.Execute(func() ([]domain.Merchant, error) {
			return l.fetchRemote(ctx)
		})
	} else {
		merchants, err = l.readFile()
	}

	if err != nil {
		l.mu.RLock()
		defer l.mu.RUnlock()
		if l.loaded {
			l.log.Warnf("Directory: fetch failed, serving cached copy: %v", err)
			return l.cached, nil
		}
		return nil, fmt.Errorf("could not load merchant directory: %w", err)
	}

	l.mu.Lock()
	l.cached = merchants
	l.loaded = true
	l.mu.Unlock()

	l.log.Infof("Directory: loaded %d merchants", len(merchants))
	return merchants, nil
}

func (l *Loader) readFile() ([]domain.Merchant, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read directory fixture: %w", err)
	}
	return l.parse(data)
}

func (l *Loader) fetchRemote(ctx context.Context) ([]domain.Merchant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch directory: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read directory response: %w", err)
	}
	return l.parse(data)
}

func (l *Loader) parse(data []byte) ([]domain.Merchant, error) {
	var merchants []domain.Merchant
	if err := json.Unmarshal(data, &merchants); err != nil {
		return nil, fmt.Errorf("parse directory JSON: %w", err)
	}

	for i := range merchants {
		if merchants[i].Slug == "" {
			merchants[i].Slug = domain.Slugify(merchants[i].Name)
		}
		if !domain.IsValidCategory(merchants[i].Category) || merchants[i].Category == "" {
			merchants[i].Category = domain.Classify(
				merchants[i].Name+" "+strings.Join(merchants[i].Tags, " "),
				l.keywords,
			)
		}
	}
	return merchants, nil
}

// Filter applies the directory's search semantics: case-insensitive
// substring match on name and tags, and an exact category filter.
func Filter(merchants []domain.Merchant, query string, category domain.MerchantCategory) []domain.Merchant {
	result := []domain.Merchant{}
	query = strings.ToLower(strings.TrimSpace(query))

	for _, m := range merchants {
		if category != "" && m.Category != category {
			continue
		}
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		result = append(result, m)
	}
	return result
}

func matchesQuery(m domain.Merchant, query string) bool {
	if strings.Contains(strings.ToLower(m.Name), query) {
		return true
	}
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// FindBySlug looks a merchant up in a directory listing.
func FindBySlug(merchants []domain.Merchant, slug string) (*domain.Merchant, bool) {
	for i := range merchants {
		if merchants[i].Slug == slug {
			return &merchants[i], true
		}
	}
	return nil, false
}
