package contests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hari10031/CodeSync-sub001/internal/db"
	"github.com/hari10031/CodeSync-sub001/internal/observability"
	"github.com/hari10031/CodeSync-sub001/internal/types"
)

// Cache persists aggregated listings between requests. *db.DB satisfies it.
type Cache interface {
	GetCachedListing(ctx context.Context, key string) (*db.CachedListing, error)
	PutCachedListing(ctx context.Context, key string, payload []byte) error
}

// Service aggregates contest sources behind a fixed-TTL cache.
type Service struct {
	sources []Source
	cache   Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewService creates an aggregator. cache may be nil, which disables
// caching entirely.
func NewService(sources []Source, cache Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = db.DefaultContestCacheTTL
	}
	return &Service{
		sources: sources,
		cache:   cache,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Listing returns the aggregated upcoming contests. A fresh cache entry is
// served as-is. On a miss every source is queried concurrently; if all of
// them fail, an expired cache entry is served rather than an error.
func (s *Service) Listing(ctx context.Context) (*types.ContestListing, error) {
	key := s.cacheKey()

	var stale *types.ContestListing
	if s.cache != nil {
		cached, err := s.cache.GetCachedListing(ctx, key)
		if err != nil {
			log.Printf("contest cache read failed: %v", err)
		} else if cached != nil {
			var listing types.ContestListing
			if err := json.Unmarshal(cached.Payload, &listing); err != nil {
				log.Printf("contest cache entry for %q is malformed: %v", key, err)
			} else {
				listing.FromCache = true
				if s.now().Sub(cached.FetchedAt) < s.ttl {
					return &listing, nil
				}
				stale = &listing
			}
		}
	}

	listing, err := s.fetchAll(ctx)
	if err != nil {
		if stale != nil {
			log.Printf("all contest sources failed, serving stale listing: %v", err)
			return stale, nil
		}
		return nil, err
	}

	if s.cache != nil {
		payload, merr := json.Marshal(listing)
		if merr == nil {
			if err := s.cache.PutCachedListing(ctx, key, payload); err != nil {
				log.Printf("contest cache write failed: %v", err)
			}
		}
	}
	return listing, nil
}

// fetchAll queries every source concurrently and merges whatever succeeds.
// It fails only when no source returns anything.
func (s *Service) fetchAll(ctx context.Context) (*types.ContestListing, error) {
	var (
		mu       sync.Mutex
		contests []types.Contest
		okNames  []string
		errs     []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range s.sources {
		g.Go(func() error {
			found, err := src.Upcoming(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				observability.ContestFetches.WithLabelValues(src.Name(), "error").Inc()
				errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
				return nil
			}
			observability.ContestFetches.WithLabelValues(src.Name(), "ok").Inc()
			contests = append(contests, found...)
			okNames = append(okNames, src.Name())
			return nil
		})
	}
	_ = g.Wait()

	if len(okNames) == 0 {
		if len(errs) == 0 {
			return nil, fmt.Errorf("no contest sources configured")
		}
		return nil, fmt.Errorf("all contest sources failed: %v", errs)
	}
	for _, err := range errs {
		log.Printf("contest source degraded: %v", err)
	}

	sort.Slice(contests, func(i, j int) bool {
		if contests[i].StartTime.Equal(contests[j].StartTime) {
			return contests[i].Name < contests[j].Name
		}
		return contests[i].StartTime.Before(contests[j].StartTime)
	})
	sort.Strings(okNames)

	return &types.ContestListing{
		Contests:  contests,
		Sources:   okNames,
		FetchedAt: s.now().UTC(),
	}, nil
}

func (s *Service) cacheKey() string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name())
	}
	sort.Strings(names)
	return "contests:" + strings.Join(names, ",")
}
