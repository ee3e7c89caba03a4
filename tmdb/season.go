package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

const seasonAppend = "credits,external_ids,images,videos,translations"

// Season is one season of a show, identified by the show ID and season number.
// Season 0 holds specials.
type Season struct {
	entity
}

// Season returns a season that resolves its fields on first access
func (c *Client) Season(showID, number int) (*Season, error) {
	return newSeason(c, map[string]any{"show_id": showID, "season_number": number})
}

// SeasonFromJSON wraps partial season data. data must carry show_id and season_number.
func (c *Client) SeasonFromJSON(data map[string]any) (*Season, error) {
	return newSeason(c, data)
}

func newSeason(c *Client, data map[string]any) (*Season, error) {
	base, err := newEntity(c, KindSeason, data, numericID("show_id"), ordinalID("season_number"))
	if err != nil {
		return nil, err
	}
	s := &Season{entity: base}
	s.resolve = func(ctx context.Context, _ string) error {
		_, err := s.FetchAll(ctx)
		return err
	}
	return s, nil
}

// ShowID returns the ID of the show this season belongs to
func (s *Season) ShowID() int { return s.intID("show_id") }

// Number returns the season number
func (s *Season) Number() int { return s.intID("season_number") }

// Equal reports whether both values refer to the same season
func (s *Season) Equal(other *Season) bool {
	return other != nil && s.ShowID() == other.ShowID() && s.Number() == other.Number()
}

func (s *Season) path(suffix string) string {
	return fmt.Sprintf("/tv/%d/season/%d%s", s.ShowID(), s.Number(), suffix)
}

// Show returns the parent show without fetching it
func (s *Season) Show() (*Show, error) {
	return s.client.Show(s.ShowID())
}

// Episode returns one episode of this season without fetching it
func (s *Season) Episode(number int) (*Episode, error) {
	return s.client.Episode(s.ShowID(), s.Number(), number)
}

// FetchAll fetches the details and every appended resource in one request
func (s *Season) FetchAll(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path(""), url.Values{"append_to_response": {seasonAppend}}, "")
}

func (s *Season) FetchDetails(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path(""), nil, "")
}

func (s *Season) FetchCredits(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/credits"), nil, "credits")
}

func (s *Season) FetchExternalIDs(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/external_ids"), nil, "external_ids")
}

func (s *Season) FetchImages(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/images"), nil, "images")
}

func (s *Season) FetchVideos(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/videos"), nil, "videos")
}

func (s *Season) FetchTranslations(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/translations"), nil, "translations")
}

// ID returns the TMDB season ID, which is only known after a fetch
func (s *Season) ID(ctx context.Context) (int, error) {
	return s.getInt(ctx, "id")
}

func (s *Season) Name(ctx context.Context) (map[string]string, error) {
	return s.translated(ctx, "name", "name")
}

func (s *Season) Overview(ctx context.Context) (map[string]string, error) {
	return s.translated(ctx, "overview", "overview")
}

func (s *Season) AirDate(ctx context.Context) (string, error) {
	return s.optionalString(ctx, "air_date")
}

// Year of the air date, or 0 when unknown
func (s *Season) Year(ctx context.Context) (int, error) {
	return s.year(ctx, "air_date")
}

// Episodes returns the episodes, each seeded with its summary and identity
func (s *Season) Episodes(ctx context.Context) ([]*Episode, error) {
	items, err := s.getObjects(ctx, "episodes")
	if err != nil {
		return nil, err
	}
	out := make([]*Episode, 0, len(items))
	for _, item := range items {
		item["show_id"] = s.ShowID()
		item["season_number"] = s.Number()
		episode, err := newEpisode(s.client, item)
		if err != nil {
			return nil, &ShapeError{Kind: s.kind, Field: "episodes", Err: err}
		}
		out = append(out, episode)
	}
	return out, nil
}

func (s *Season) Posters(ctx context.Context) ([]*Image, error) {
	return s.images(ctx, ImagePoster, "images", "posters")
}

func (s *Season) Videos(ctx context.Context) ([]Video, error) {
	return s.videos(ctx)
}

func (s *Season) ExternalIDs(ctx context.Context) (map[string]string, error) {
	return s.externalIDs(ctx)
}

// Cast pairs each cast member with a credit that already knows the show
func (s *Season) Cast(ctx context.Context) ([]PersonCredit, error) {
	return s.credits(ctx, "cast")
}

// Crew pairs each crew member with a credit that already knows the show
func (s *Season) Crew(ctx context.Context) ([]PersonCredit, error) {
	return s.credits(ctx, "crew")
}

func (s *Season) credits(ctx context.Context, creditType string) ([]PersonCredit, error) {
	items, err := s.getObjects(ctx, "credits", creditType)
	if err != nil {
		return nil, err
	}
	show, err := s.Show()
	if err != nil {
		return nil, err
	}
	return personCredits(s.client, show, creditType, items)
}
