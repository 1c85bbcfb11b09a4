package catalog

import (
	"context"
	"errors"
	"testing"

	"binger-server/internal/model"
)

type fakeProvider struct {
	seasons map[int]*model.Season
	fail    map[int]bool
	// called when a season fetch starts, lets tests interleave selections
	onFetch func()
}

func (f *fakeProvider) FetchShow(ctx context.Context, id int64) (*model.Show, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) FetchSeason(ctx context.Context, showID int64, number int) (*model.Season, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	if f.fail[number] {
		return nil, errors.New("upstream error")
	}
	s, ok := f.seasons[number]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeProvider) SearchShows(ctx context.Context, query string) ([]model.Show, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) FetchSimilar(ctx context.Context, showID int64) ([]model.Show, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) DiscoverByGenre(ctx context.Context, genreID int64, page int) ([]model.Show, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) Trending(ctx context.Context) ([]model.Show, error) {
	return nil, errors.New("not implemented")
}

func TestFetchSeasonsSkipsSpecialsAndFailures(t *testing.T) {
	fp := &fakeProvider{
		seasons: map[int]*model.Season{
			1: {Number: 1, EpisodeCount: 10},
			2: {Number: 2, EpisodeCount: 8},
		},
		fail: map[int]bool{2: true},
	}
	l := NewLoader(fp)

	show := &model.Show{ID: 7, Seasons: []model.Season{{Number: 0}, {Number: 1}, {Number: 2}}}
	gen := l.Begin("user-a")
	got, ok := l.FetchSeasons(context.Background(), "user-a", gen, show)
	if !ok {
		t.Fatal("expected current generation to succeed")
	}
	if len(got) != 1 || got[0].Number != 1 {
		t.Fatalf("expected only season 1, got %+v", got)
	}
}

func TestFetchSeasonsDiscardsStaleResult(t *testing.T) {
	l := NewLoader(nil)
	fp := &fakeProvider{
		seasons: map[int]*model.Season{1: {Number: 1}},
		// a newer selection lands while the first is in flight
		onFetch: func() { l.Begin("user-a") },
	}
	l.provider = fp

	show := &model.Show{ID: 7, Seasons: []model.Season{{Number: 1}}}
	gen := l.Begin("user-a")
	if _, ok := l.FetchSeasons(context.Background(), "user-a", gen, show); ok {
		t.Fatal("superseded load must report ok=false")
	}
}

func TestGenerationsAreIndependentPerOwner(t *testing.T) {
	l := NewLoader(&fakeProvider{})
	genA := l.Begin("user-a")
	l.Begin("user-b")
	if !l.Current("user-a", genA) {
		t.Fatal("another owner's selection must not invalidate user-a")
	}
}
