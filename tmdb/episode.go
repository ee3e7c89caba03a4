package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

const episodeAppend = "credits,external_ids,images,videos,translations"

// Episode is one episode of a show, identified by show ID, season number and episode number
type Episode struct {
	entity
}

// Episode returns an episode that resolves its fields on first access
func (c *Client) Episode(showID, season, number int) (*Episode, error) {
	return newEpisode(c, map[string]any{"show_id": showID, "season_number": season, "episode_number": number})
}

// EpisodeFromJSON wraps partial episode data. data must carry show_id,
// season_number and episode_number.
func (c *Client) EpisodeFromJSON(data map[string]any) (*Episode, error) {
	return newEpisode(c, data)
}

func newEpisode(c *Client, data map[string]any) (*Episode, error) {
	base, err := newEntity(c, KindEpisode, data,
		numericID("show_id"), ordinalID("season_number"), ordinalID("episode_number"))
	if err != nil {
		return nil, err
	}
	e := &Episode{entity: base}
	e.resolve = func(ctx context.Context, _ string) error {
		_, err := e.FetchAll(ctx)
		return err
	}
	return e, nil
}

func (e *Episode) ShowID() int { return e.intID("show_id") }

func (e *Episode) SeasonNumber() int { return e.intID("season_number") }

func (e *Episode) Number() int { return e.intID("episode_number") }

// Equal reports whether both values refer to the same episode
func (e *Episode) Equal(other *Episode) bool {
	return other != nil && e.Identifier() == other.Identifier()
}

func (e *Episode) path(suffix string) string {
	return fmt.Sprintf("/tv/%d/season/%d/episode/%d%s", e.ShowID(), e.SeasonNumber(), e.Number(), suffix)
}

// Show returns the parent show without fetching it
func (e *Episode) Show() (*Show, error) {
	return e.client.Show(e.ShowID())
}

// Season returns the parent season without fetching it
func (e *Episode) Season() (*Season, error) {
	return e.client.Season(e.ShowID(), e.SeasonNumber())
}

// FetchAll fetches the details and every appended resource in one request
func (e *Episode) FetchAll(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path(""), url.Values{"append_to_response": {episodeAppend}}, "")
}

func (e *Episode) FetchDetails(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path(""), nil, "")
}

func (e *Episode) FetchCredits(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path("/credits"), nil, "credits")
}

func (e *Episode) FetchExternalIDs(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path("/external_ids"), nil, "external_ids")
}

func (e *Episode) FetchImages(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path("/images"), nil, "images")
}

func (e *Episode) FetchVideos(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path("/videos"), nil, "videos")
}

func (e *Episode) FetchTranslations(ctx context.Context) (map[string]any, error) {
	return e.fetch(ctx, e.path("/translations"), nil, "translations")
}

// ID returns the TMDB episode ID
func (e *Episode) ID(ctx context.Context) (int, error) {
	return e.getInt(ctx, "id")
}

// Title returns the episode name keyed by country, plus "default"
func (e *Episode) Title(ctx context.Context) (map[string]string, error) {
	return e.translated(ctx, "name", "name")
}

func (e *Episode) Overview(ctx context.Context) (map[string]string, error) {
	return e.translated(ctx, "overview", "overview")
}

func (e *Episode) AirDate(ctx context.Context) (string, error) {
	return e.optionalString(ctx, "air_date")
}

func (e *Episode) Year(ctx context.Context) (int, error) {
	return e.year(ctx, "air_date")
}

// Runtime in minutes, or 0 when unknown
func (e *Episode) Runtime(ctx context.Context) (int, error) {
	return e.getInt(ctx, "runtime")
}

func (e *Episode) Vote(ctx context.Context) (Vote, error) {
	return e.vote(ctx)
}

func (e *Episode) Stills(ctx context.Context) ([]*Image, error) {
	return e.images(ctx, ImageStill, "images", "stills")
}

func (e *Episode) Videos(ctx context.Context) ([]Video, error) {
	return e.videos(ctx)
}

func (e *Episode) ExternalIDs(ctx context.Context) (map[string]string, error) {
	return e.externalIDs(ctx)
}

func (e *Episode) Cast(ctx context.Context) ([]PersonCredit, error) {
	return e.credits(ctx, "cast", "cast")
}

func (e *Episode) Crew(ctx context.Context) ([]PersonCredit, error) {
	return e.credits(ctx, "crew", "crew")
}

// GuestStars returns the actors appearing in this episode only
func (e *Episode) GuestStars(ctx context.Context) ([]PersonCredit, error) {
	return e.credits(ctx, "guest_stars", "cast")
}

func (e *Episode) credits(ctx context.Context, listKey, creditType string) ([]PersonCredit, error) {
	items, err := e.getObjects(ctx, "credits", listKey)
	if err != nil {
		return nil, err
	}
	show, err := e.Show()
	if err != nil {
		return nil, err
	}
	return personCredits(e.client, show, creditType, items)
}
