package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"binger-server/internal/model"
)

// Loader fans season fetches out concurrently and guards against stale
// completions. Every load is tagged with the generation active for its owner
// (the requesting user) at dispatch time; when the same owner starts a newer
// load, results of the superseded one are discarded instead of being applied
// retroactively.
type Loader struct {
	provider Provider

	mu   sync.Mutex
	gens map[string]uint64
}

func NewLoader(p Provider) *Loader {
	return &Loader{provider: p, gens: make(map[string]uint64)}
}

// Begin marks a new selection for owner and returns its generation token.
func (l *Loader) Begin(owner string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gens[owner]++
	return l.gens[owner]
}

// Current reports whether gen is still the owner's active selection.
func (l *Loader) Current(owner string, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gens[owner] == gen
}

// FetchSeasons loads episode lists for every non-special season of the show.
// Failed fetches are dropped rather than coerced into empty seasons. Returns
// ok=false when the owner's selection changed while fetching; callers must
// discard the partial result in that case.
func (l *Loader) FetchSeasons(ctx context.Context, owner string, gen uint64, show *model.Show) ([]model.Season, bool) {
	p := pool.NewWithResults[*model.Season]()
	for _, s := range show.Seasons {
		if s.Number == 0 {
			continue
		}
		num := s.Number
		p.Go(func() *model.Season {
			season, err := l.provider.FetchSeason(ctx, show.ID, num)
			if err != nil {
				log.Warn().Err(err).Int64("show_id", show.ID).Int("season", num).Msg("season fetch failed")
				return nil
			}
			return season
		})
	}
	results := p.Wait()
	if !l.Current(owner, gen) {
		return nil, false
	}
	out := make([]model.Season, 0, len(results))
	for _, s := range results {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, true
}
