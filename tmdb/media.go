package tmdb

import (
	"fmt"

	"github.com/spf13/cast"
)

// Media is a movie or a TV show
type Media interface {
	Entity
	ID() int
	// MediaType is "movie" or "tv"
	MediaType() string
}

var (
	_ Media = (*Movie)(nil)
	_ Media = (*Show)(nil)
)

// mediaFromJSON builds a Movie or Show from an object tagged with media_type
func mediaFromJSON(c *Client, data map[string]any) (Media, error) {
	switch mediaType := cast.ToString(data["media_type"]); mediaType {
	case KindMovie:
		m, err := newMovie(c, data)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindShow:
		s, err := newShow(c, data)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &ConstructionError{Kind: "media", Field: "media_type", Err: fmt.Errorf("unsupported media type %q", mediaType)}
	}
}

// entityFromJSON builds a Movie, Show or Person from a mixed result such as
// multi search or trending. fallback applies when media_type is absent.
func entityFromJSON(c *Client, data map[string]any, fallback string) (Entity, error) {
	mediaType := cast.ToString(data["media_type"])
	if mediaType == "" {
		mediaType = fallback
	}
	switch mediaType {
	case KindPerson:
		p, err := newPerson(c, data)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindMovie, KindShow:
		data["media_type"] = mediaType
		return mediaFromJSON(c, data)
	default:
		return nil, &ConstructionError{Kind: "result", Field: "media_type", Err: fmt.Errorf("unsupported media type %q", mediaType)}
	}
}
