package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/gominatim"
	"github.com/redis/go-redis/v9"

	"trip-planner/logging"
	"trip-planner/models"
)

const (
	DefaultNominatimServer = "https://nominatim.openstreetmap.org"
	DefaultSearchLimit     = 5
	searchArea             = "기타"
	searchPrefix           = "search-"
	// Nominatim usage policy allows one request per second.
	nominatimMinInterval = time.Second
)

// PlaceSearcher finds places outside the catalog by free-text query.
type PlaceSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.Place, error)
}

type nominatimFetch func(q string, limit int) ([]gominatim.SearchResult, error)

// NominatimSearcher queries an OpenStreetMap Nominatim server.
type NominatimSearcher struct {
	citySuffix string
	fetch      nominatimFetch

	throttleMu sync.Mutex
	last       time.Time
}

var nominatimServerOnce sync.Once

// NewNominatimSearcher points gominatim at server. The server is process-wide
// in gominatim, so only the first call takes effect.
func NewNominatimSearcher(server, citySuffix string) *NominatimSearcher {
	if strings.TrimSpace(server) == "" {
		server = DefaultNominatimServer
	}
	nominatimServerOnce.Do(func() { gominatim.SetServer(server) })
	return &NominatimSearcher{
		citySuffix: citySuffix,
		fetch: func(q string, limit int) ([]gominatim.SearchResult, error) {
			qObj := gominatim.SearchQuery{Q: q, Limit: limit}
			return qObj.Get()
		},
	}
}

type searchOutcome struct {
	results []gominatim.SearchResult
	err     error
}

func (s *NominatimSearcher) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("search query is empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := query
	if s.citySuffix != "" {
		q = query + " " + s.citySuffix
	}

	if err := s.throttle(ctx); err != nil {
		return nil, err
	}

	done := make(chan searchOutcome, 1)
	go func() {
		res, err := s.fetch(q, limit)
		done <- searchOutcome{results: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("nominatim search %q: %w", q, out.err)
		}
		return placesFromResults(out.results, limit), nil
	}
}

func (s *NominatimSearcher) throttle(ctx context.Context) error {
	s.throttleMu.Lock()
	defer s.throttleMu.Unlock()
	if wait := nominatimMinInterval - time.Since(s.last); wait > 0 && !s.last.IsZero() {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	s.last = time.Now()
	return nil
}

func placesFromResults(results []gominatim.SearchResult, limit int) []models.Place {
	places := make([]models.Place, 0, len(results))
	for _, r := range results {
		place := models.Place{
			ID:      searchPrefix + uuid.NewString(),
			Name:    shortName(r.DisplayName),
			Area:    searchArea,
			Type:    r.Type,
			Address: r.DisplayName,
		}
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr == nil && lngErr == nil {
			place.Coordinates = &models.Coordinates{Lat: lat, Lng: lng}
		}
		places = append(places, place)
		if len(places) >= limit {
			break
		}
	}
	return places
}

// shortName keeps the first component of a Nominatim display name.
func shortName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(name)
}

// CachedSearcher remembers provider results in Redis.
type CachedSearcher struct {
	next   PlaceSearcher
	client *redis.Client
	ttl    time.Duration
	log    logging.Logger
}

func NewCachedSearcher(next PlaceSearcher, client *redis.Client, ttl time.Duration, log logging.Logger) *CachedSearcher {
	if log == nil {
		log = logging.Noop()
	}
	return &CachedSearcher{next: next, client: client, ttl: ttl, log: log}
}

func searchCacheKey(query string, limit int) string {
	return fmt.Sprintf("trip:search:%d:%s", limit, strings.ToLower(strings.TrimSpace(query)))
}

func (c *CachedSearcher) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	key := searchCacheKey(query, limit)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var places []models.Place
		if err := json.Unmarshal(cached, &places); err == nil {
			return places, nil
		}
		c.log.Warn(ctx, "discarding unreadable search cache entry", logging.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn(ctx, "search cache unavailable", logging.Err(err))
	}

	places, err := c.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(places); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn(ctx, "failed to cache search results", logging.Err(err))
		}
	}
	return places, nil
}
