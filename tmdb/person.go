package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

const personAppend = "movie_credits,tv_credits,external_ids,images,translations"

// Person is a lazily resolved cast or crew member
type Person struct {
	entity
}

// Person returns a person that resolves their fields on first access
func (c *Client) Person(id int) (*Person, error) {
	return newPerson(c, map[string]any{"id": id})
}

// PersonFromJSON wraps partial person data. data must carry an id.
func (c *Client) PersonFromJSON(data map[string]any) (*Person, error) {
	return newPerson(c, data)
}

func newPerson(c *Client, data map[string]any) (*Person, error) {
	base, err := newEntity(c, KindPerson, data, numericID("id"))
	if err != nil {
		return nil, err
	}
	p := &Person{entity: base}
	p.resolve = func(ctx context.Context, _ string) error {
		_, err := p.FetchAll(ctx)
		return err
	}
	return p, nil
}

// ID returns the TMDB person ID
func (p *Person) ID() int { return p.intID("id") }

// Equal reports whether both values refer to the same person
func (p *Person) Equal(other *Person) bool {
	return other != nil && p.ID() == other.ID()
}

func (p *Person) path(suffix string) string {
	return fmt.Sprintf("/person/%d%s", p.ID(), suffix)
}

// FetchAll fetches the details and every appended resource in one request
func (p *Person) FetchAll(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path(""), url.Values{"append_to_response": {personAppend}}, "")
}

func (p *Person) FetchDetails(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path(""), nil, "")
}

func (p *Person) FetchMovieCredits(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path("/movie_credits"), nil, "movie_credits")
}

func (p *Person) FetchShowCredits(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path("/tv_credits"), nil, "tv_credits")
}

func (p *Person) FetchExternalIDs(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path("/external_ids"), nil, "external_ids")
}

func (p *Person) FetchImages(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path("/images"), nil, "images")
}

func (p *Person) FetchTranslations(ctx context.Context) (map[string]any, error) {
	return p.fetch(ctx, p.path("/translations"), nil, "translations")
}

func (p *Person) Name(ctx context.Context) (string, error) {
	return p.getString(ctx, "name")
}

// Biography returns the biography keyed by country, plus "default"
func (p *Person) Biography(ctx context.Context) (map[string]string, error) {
	return p.translated(ctx, "biography", "biography")
}

func (p *Person) Birthday(ctx context.Context) (string, error) {
	return p.optionalString(ctx, "birthday")
}

// Deathday is "" for living people
func (p *Person) Deathday(ctx context.Context) (string, error) {
	return p.optionalString(ctx, "deathday")
}

// Gender as coded by TMDB: 0 not set, 1 female, 2 male, 3 non-binary
func (p *Person) Gender(ctx context.Context) (int, error) {
	return p.getInt(ctx, "gender")
}

func (p *Person) KnownForDepartment(ctx context.Context) (string, error) {
	return p.getString(ctx, "known_for_department")
}

func (p *Person) PlaceOfBirth(ctx context.Context) (string, error) {
	return p.optionalString(ctx, "place_of_birth")
}

func (p *Person) Homepage(ctx context.Context) (string, error) {
	return p.optionalString(ctx, "homepage")
}

func (p *Person) AlsoKnownAs(ctx context.Context) ([]string, error) {
	return p.getStrings(ctx, "also_known_as")
}

func (p *Person) Popularity(ctx context.Context) (float64, error) {
	return p.getFloat(ctx, "popularity")
}

func (p *Person) IMDbID(ctx context.Context) (string, error) {
	return p.optionalString(ctx, "imdb_id")
}

func (p *Person) Profiles(ctx context.Context) ([]*Image, error) {
	return p.images(ctx, ImageProfile, "images", "profiles")
}

func (p *Person) ExternalIDs(ctx context.Context) (map[string]string, error) {
	return p.externalIDs(ctx)
}

// MovieCast returns the acting roles in movies, each credit already knowing this person
func (p *Person) MovieCast(ctx context.Context) ([]MovieCredit, error) {
	return p.movieCredits(ctx, "cast")
}

// MovieCrew returns the crew jobs in movies
func (p *Person) MovieCrew(ctx context.Context) ([]MovieCredit, error) {
	return p.movieCredits(ctx, "crew")
}

// ShowCast returns the acting roles in TV shows
func (p *Person) ShowCast(ctx context.Context) ([]ShowCredit, error) {
	return p.showCredits(ctx, "cast")
}

// ShowCrew returns the crew jobs in TV shows
func (p *Person) ShowCrew(ctx context.Context) ([]ShowCredit, error) {
	return p.showCredits(ctx, "crew")
}

func (p *Person) movieCredits(ctx context.Context, creditType string) ([]MovieCredit, error) {
	items, err := p.getObjects(ctx, "movie_credits", creditType)
	if err != nil {
		return nil, err
	}
	out := make([]MovieCredit, 0, len(items))
	for _, item := range items {
		media, credit, err := mediaCredit(p, creditType, KindMovie, item)
		if err != nil {
			return nil, err
		}
		out = append(out, MovieCredit{Movie: media.(*Movie), Credit: credit})
	}
	return out, nil
}

func (p *Person) showCredits(ctx context.Context, creditType string) ([]ShowCredit, error) {
	items, err := p.getObjects(ctx, "tv_credits", creditType)
	if err != nil {
		return nil, err
	}
	out := make([]ShowCredit, 0, len(items))
	for _, item := range items {
		media, credit, err := mediaCredit(p, creditType, KindShow, item)
		if err != nil {
			return nil, err
		}
		out = append(out, ShowCredit{Show: media.(*Show), Credit: credit})
	}
	return out, nil
}
