package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	retry "github.com/avast/retry-go/v4"

	"binger-server/internal/model"
)

type Client struct {
	APIKey           string
	BaseURL          string
	Language         string // primary locale, e.g. fa-IR
	FallbackLanguage string // used when the localized overview comes back empty
	Client           *http.Client
}

func New(apiKey, language, fallbackLanguage string) *Client {
	return &Client{
		APIKey:           apiKey,
		BaseURL:          "https://api.themoviedb.org/3",
		Language:         language,
		FallbackLanguage: fallbackLanguage,
		Client:           &http.Client{Timeout: 15 * time.Second},
	}
}

type tvItem struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	OriginalName  string   `json:"original_name"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path"`
	BackdropPath  string   `json:"backdrop_path"`
	FirstAirDate  string   `json:"first_air_date"`
	VoteAverage   float64  `json:"vote_average"`
	GenreIDs      []int64  `json:"genre_ids"`
	OriginCountry []string `json:"origin_country"`
}

type pagedResp struct {
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Results    []tvItem `json:"results"`
}

type seasonItem struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	AirDate      string `json:"air_date"`
	EpisodeCount int    `json:"episode_count"`
}

type episodeItem struct {
	ID            int64  `json:"id"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	StillPath     string `json:"still_path"`
	Runtime       int    `json:"runtime"`
}

type showResp struct {
	tvItem
	Status           string       `json:"status"`
	NumberOfEpisodes int          `json:"number_of_episodes"`
	Seasons          []seasonItem `json:"seasons"`
	NextEpisode      *episodeItem `json:"next_episode_to_air"`
	Genres           []struct {
		ID int64 `json:"id"`
	} `json:"genres"`
}

type seasonResp struct {
	SeasonNumber int           `json:"season_number"`
	Name         string        `json:"name"`
	AirDate      string        `json:"air_date"`
	Episodes     []episodeItem `json:"episodes"`
}

// get performs one API call with retries on network errors and 5xx.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.APIKey == "" {
		return fmt.Errorf("missing TMDB API key")
	}
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("api_key", c.APIKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.Client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			switch {
			case resp.StatusCode == http.StatusOK:
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return retry.Unrecoverable(err)
				}
				return nil
			case resp.StatusCode >= 500:
				return fmt.Errorf("tmdb status %d", resp.StatusCode)
			default:
				return retry.Unrecoverable(fmt.Errorf("tmdb status %d", resp.StatusCode))
			}
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

// FetchShow returns the show with its season list. When the localized
// overview is empty and a fallback locale is configured, the text fields are
// refetched in the fallback locale so callers always see one filled record.
func (c *Client) FetchShow(ctx context.Context, id int64) (*model.Show, error) {
	var sr showResp
	path := fmt.Sprintf("/tv/%d", id)
	if err := c.get(ctx, path, langParams(c.Language), &sr); err != nil {
		return nil, err
	}
	if sr.Overview == "" && c.FallbackLanguage != "" && c.FallbackLanguage != c.Language {
		var fb showResp
		if err := c.get(ctx, path, langParams(c.FallbackLanguage), &fb); err == nil {
			if sr.Overview == "" {
				sr.Overview = fb.Overview
			}
			if sr.Name == "" {
				sr.Name = fb.Name
			}
		}
	}
	return showFromResp(sr), nil
}

// FetchSeason returns a season with its episode list, with the same locale
// fallback policy applied to the season name and episode overviews.
func (c *Client) FetchSeason(ctx context.Context, showID int64, number int) (*model.Season, error) {
	var sr seasonResp
	path := fmt.Sprintf("/tv/%d/season/%d", showID, number)
	if err := c.get(ctx, path, langParams(c.Language), &sr); err != nil {
		return nil, err
	}
	if seasonLacksText(sr) && c.FallbackLanguage != "" && c.FallbackLanguage != c.Language {
		var fb seasonResp
		if err := c.get(ctx, path, langParams(c.FallbackLanguage), &fb); err == nil {
			fillSeasonText(&sr, fb)
		}
	}
	season := seasonFromResp(sr)
	return &season, nil
}

func (c *Client) SearchShows(ctx context.Context, query string) ([]model.Show, error) {
	params := langParams(c.Language)
	params.Set("query", query)
	var pr pagedResp
	if err := c.get(ctx, "/search/tv", params, &pr); err != nil {
		return nil, err
	}
	return showsFromItems(pr.Results), nil
}

func (c *Client) FetchSimilar(ctx context.Context, showID int64) ([]model.Show, error) {
	var pr pagedResp
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/similar", showID), langParams(c.Language), &pr); err != nil {
		return nil, err
	}
	return showsFromItems(pr.Results), nil
}

// DiscoverByGenre lists shows for a genre, popularity-descending. A genre id
// of 0 means unfiltered discovery, which callers use as the trending-ish
// degradation path.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64, page int) ([]model.Show, error) {
	params := langParams(c.Language)
	if genreID > 0 {
		params.Set("with_genres", strconv.FormatInt(genreID, 10))
	}
	params.Set("sort_by", "popularity.desc")
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	var pr pagedResp
	if err := c.get(ctx, "/discover/tv", params, &pr); err != nil {
		return nil, err
	}
	return showsFromItems(pr.Results), nil
}

func (c *Client) Trending(ctx context.Context) ([]model.Show, error) {
	var pr pagedResp
	if err := c.get(ctx, "/trending/tv/week", langParams(c.Language), &pr); err != nil {
		return nil, err
	}
	return showsFromItems(pr.Results), nil
}

func langParams(lang string) url.Values {
	v := url.Values{}
	if lang != "" {
		v.Set("language", lang)
	}
	return v
}

func seasonLacksText(sr seasonResp) bool {
	for _, ep := range sr.Episodes {
		if ep.Overview == "" {
			return true
		}
	}
	return sr.Name == ""
}

func fillSeasonText(dst *seasonResp, src seasonResp) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	fallback := make(map[int64]episodeItem, len(src.Episodes))
	for _, ep := range src.Episodes {
		fallback[ep.ID] = ep
	}
	for i := range dst.Episodes {
		if dst.Episodes[i].Overview == "" {
			if fb, ok := fallback[dst.Episodes[i].ID]; ok {
				dst.Episodes[i].Overview = fb.Overview
			}
		}
		if dst.Episodes[i].Name == "" {
			if fb, ok := fallback[dst.Episodes[i].ID]; ok {
				dst.Episodes[i].Name = fb.Name
			}
		}
	}
}

func showFromResp(sr showResp) *model.Show {
	s := showFromItem(sr.tvItem)
	s.Status = sr.Status
	s.EpisodeTotal = sr.NumberOfEpisodes
	if len(sr.Genres) > 0 {
		s.GenreIDs = s.GenreIDs[:0]
		for _, g := range sr.Genres {
			s.GenreIDs = append(s.GenreIDs, g.ID)
		}
	}
	s.Seasons = make([]model.Season, 0, len(sr.Seasons))
	for _, sea := range sr.Seasons {
		s.Seasons = append(s.Seasons, model.Season{
			Number:       sea.SeasonNumber,
			Name:         sea.Name,
			AirDate:      parseDate(sea.AirDate),
			EpisodeCount: sea.EpisodeCount,
		})
	}
	if sr.NextEpisode != nil {
		s.NextAirDate = parseDate(sr.NextEpisode.AirDate)
	}
	return &s
}

func seasonFromResp(sr seasonResp) model.Season {
	season := model.Season{
		Number:       sr.SeasonNumber,
		Name:         sr.Name,
		AirDate:      parseDate(sr.AirDate),
		EpisodeCount: len(sr.Episodes),
	}
	for _, ep := range sr.Episodes {
		season.Episodes = append(season.Episodes, model.Episode{
			ID:        ep.ID,
			Season:    ep.SeasonNumber,
			Number:    ep.EpisodeNumber,
			Name:      ep.Name,
			Overview:  strPtr(ep.Overview),
			AirDate:   parseDate(ep.AirDate),
			StillPath: strPtr(ep.StillPath),
			Runtime:   ep.Runtime,
		})
	}
	return season
}

func showsFromItems(items []tvItem) []model.Show {
	out := make([]model.Show, 0, len(items))
	for _, it := range items {
		out = append(out, showFromItem(it))
	}
	return out
}

func showFromItem(it tvItem) model.Show {
	return model.Show{
		ID:            it.ID,
		Name:          it.Name,
		OriginalName:  it.OriginalName,
		Overview:      strPtr(it.Overview),
		PosterPath:    strPtr(it.PosterPath),
		BackdropPath:  strPtr(it.BackdropPath),
		FirstAirDate:  parseDate(it.FirstAirDate),
		VoteAverage:   it.VoteAverage,
		GenreIDs:      it.GenreIDs,
		OriginCountry: it.OriginCountry,
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
