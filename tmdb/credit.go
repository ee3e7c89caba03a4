package tmdb

import (
	"context"
	"fmt"
)

// Fields a credit record carries about the role rather than the person or title
var creditFields = []string{"credit_id", "character", "department", "job", "order", "episode_count", "cast_id"}

// Fields a credit record carries about the person
var personFields = []string{"id", "name", "original_name", "gender", "known_for_department", "profile_path", "popularity", "adult"}

// Credit links a person to a movie or show. A credit synthesized from a
// movie, show or person already knows that side of the link and returns it
// without a request.
type Credit struct {
	entity
	person *Person
	media  Media
}

// PersonCredit is a cast or crew member of a movie, show, season or episode
type PersonCredit struct {
	Person *Person
	Credit *Credit
}

// MovieCredit is a movie role of a person
type MovieCredit struct {
	Movie  *Movie
	Credit *Credit
}

// ShowCredit is a TV role of a person
type ShowCredit struct {
	Show   *Show
	Credit *Credit
}

// Credit returns a thin credit that resolves through /credit/{id}
func (c *Client) Credit(id string) (*Credit, error) {
	return newCredit(c, map[string]any{"id": id})
}

// CreditFromJSON wraps partial credit data. data must carry an id.
func (c *Client) CreditFromJSON(data map[string]any) (*Credit, error) {
	return newCredit(c, data)
}

func newCredit(c *Client, data map[string]any) (*Credit, error) {
	base, err := newEntity(c, KindCredit, data, textID("id"))
	if err != nil {
		return nil, err
	}
	cr := &Credit{entity: base}
	cr.resolve = func(ctx context.Context, _ string) error {
		_, err := cr.FetchDetails(ctx)
		return err
	}
	return cr, nil
}

// ID returns the credit ID
func (cr *Credit) ID() string { return cr.Identifier() }

// Equal reports whether both values refer to the same credit
func (cr *Credit) Equal(other *Credit) bool {
	return other != nil && cr.ID() == other.ID()
}

// FetchDetails fetches the credit, including the person and media it links
func (cr *Credit) FetchDetails(ctx context.Context) (map[string]any, error) {
	payload, err := cr.fetch(ctx, "/credit/"+cr.ID(), nil, "")
	if err != nil {
		return nil, err
	}
	// the character of a cast credit is reported on the media object
	if _, ok := cr.cache["character"]; !ok {
		if media, ok := cr.cache["media"].(map[string]any); ok {
			if character, ok := media["character"]; ok {
				cr.cache["character"] = character
			}
		}
	}
	return payload, nil
}

// CreditType is "cast" or "crew"
func (cr *Credit) CreditType(ctx context.Context) (string, error) {
	return cr.getString(ctx, "credit_type")
}

func (cr *Credit) Department(ctx context.Context) (string, error) {
	return cr.getString(ctx, "department")
}

func (cr *Credit) Job(ctx context.Context) (string, error) {
	return cr.getString(ctx, "job")
}

// Character is the role played, or "" for crew credits
func (cr *Credit) Character(ctx context.Context) (string, error) {
	return cr.optionalString(ctx, "character")
}

// MediaType is "movie" or "tv"
func (cr *Credit) MediaType(ctx context.Context) (string, error) {
	if cr.media != nil {
		return cr.media.MediaType(), nil
	}
	return cr.getString(ctx, "media_type")
}

// Person returns the credited person
func (cr *Credit) Person(ctx context.Context) (*Person, error) {
	if cr.person != nil {
		return cr.person, nil
	}
	value, err := cr.get(ctx, "person")
	if err != nil {
		return nil, err
	}
	data, err := asObject(cr.kind, "person", value)
	if err != nil {
		return nil, err
	}
	person, err := newPerson(cr.client, data)
	if err != nil {
		return nil, &ShapeError{Kind: cr.kind, Field: "person", Err: err}
	}
	cr.person = person
	return person, nil
}

// Media returns the credited movie or show
func (cr *Credit) Media(ctx context.Context) (Media, error) {
	if cr.media != nil {
		return cr.media, nil
	}
	mediaType, err := cr.getString(ctx, "media_type")
	if err != nil {
		return nil, err
	}
	value, err := cr.get(ctx, "media")
	if err != nil {
		return nil, err
	}
	data, err := asObject(cr.kind, "media", value)
	if err != nil {
		return nil, err
	}
	data["media_type"] = mediaType
	media, err := mediaFromJSON(cr.client, data)
	if err != nil {
		return nil, &ShapeError{Kind: cr.kind, Field: "media", Err: err}
	}
	cr.media = media
	return media, nil
}

// creditData builds the seed of a credit from a cast or crew record
func creditData(item map[string]any, creditType, mediaType string) (map[string]any, error) {
	id, ok := item["credit_id"]
	if !ok {
		return nil, &ShapeError{Kind: KindCredit, Field: creditType + ".credit_id"}
	}
	data := pick(item, "character", "department", "job", "order", "episode_count")
	data["id"] = id
	data["credit_type"] = creditType
	data["media_type"] = mediaType
	if _, ok := data["character"]; !ok && creditType == "crew" {
		data["character"] = nil
	}
	return data, nil
}

// personCredits synthesizes person and credit pairs from a credits list of media
func personCredits(c *Client, media Media, creditType string, items []map[string]any) ([]PersonCredit, error) {
	out := make([]PersonCredit, 0, len(items))
	for _, item := range items {
		person, err := newPerson(c, pick(item, personFields...))
		if err != nil {
			return nil, &ShapeError{Kind: media.Kind(), Field: creditType, Err: err}
		}
		data, err := creditData(item, creditType, media.MediaType())
		if err != nil {
			return nil, err
		}
		credit, err := newCredit(c, data)
		if err != nil {
			return nil, &ShapeError{Kind: media.Kind(), Field: creditType, Err: err}
		}
		credit.person = person
		credit.media = media
		out = append(out, PersonCredit{Person: person, Credit: credit})
	}
	return out, nil
}

// mediaCredit synthesizes the title and credit of one filmography record of p
func mediaCredit(p *Person, creditType, mediaType string, item map[string]any) (Media, *Credit, error) {
	data := omit(item, creditFields...)
	data["media_type"] = mediaType
	media, err := mediaFromJSON(p.client, data)
	if err != nil {
		return nil, nil, &ShapeError{Kind: p.kind, Field: fmt.Sprintf("%s_credits.%s", mediaType, creditType), Err: err}
	}
	seed, err := creditData(item, creditType, mediaType)
	if err != nil {
		return nil, nil, err
	}
	credit, err := newCredit(p.client, seed)
	if err != nil {
		return nil, nil, err
	}
	credit.person = p
	credit.media = media
	return media, credit, nil
}

func omit(obj map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}
