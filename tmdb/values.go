package tmdb

import (
	"strconv"

	"github.com/spf13/cast"
)

// Genre is a movie or TV genre
type Genre struct {
	ID   int
	Name string
}

func (g Genre) String() string { return g.Name }

// Country is a production or origin country
type Country struct {
	Code        string
	Name        string
	EnglishName string
}

func (c Country) String() string { return c.Name }

// Language is a spoken or original language
type Language struct {
	Code        string
	Name        string
	EnglishName string
}

func (l Language) String() string { return l.EnglishName }

// Vote is an aggregate user rating
type Vote struct {
	Average float64
	Count   int
}

func (v Vote) String() string { return strconv.FormatFloat(v.Average, 'f', -1, 64) }

// Keyword is a tag attached to a movie or show
type Keyword struct {
	ID   int
	Name string
}

func (k Keyword) String() string { return k.Name }

// Video is a trailer, teaser or clip hosted on YouTube or Vimeo
type Video struct {
	ID       string
	Key      string
	Name     string
	Site     string
	Type     string
	Size     int
	Official bool
	Language string
	Country  string
}

// URL returns the watch page of the video, or "" for unknown hosts
func (v Video) URL() string {
	switch v.Site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "Vimeo":
		return "https://vimeo.com/" + v.Key
	default:
		return ""
	}
}

func (v Video) String() string { return v.URL() }

// Release is one dated release of a movie in a country
type Release struct {
	Certification string
	Date          string
	Note          string
	Type          int
}

// AlternativeTitle is a title a movie or show is known by in a country
type AlternativeTitle struct {
	Country string
	Title   string
	Type    string
}

// ContentRating is a show's age rating in a country
type ContentRating struct {
	Country string
	Rating  string
}

// Review is a user review of a movie or show
type Review struct {
	ID        string
	Author    string
	Content   string
	URL       string
	CreatedAt string
	Rating    float64
}

func parseGenres(kind, field string, items []map[string]any) ([]Genre, error) {
	out := make([]Genre, 0, len(items))
	for _, item := range items {
		r := newRecord(kind, field, item)
		genre := Genre{ID: r.integer("id"), Name: r.str("name")}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, genre)
	}
	return out, nil
}

func parseCountries(kind, field string, items []map[string]any) ([]Country, error) {
	out := make([]Country, 0, len(items))
	for _, item := range items {
		r := newRecord(kind, field, item)
		country := Country{Code: r.str("iso_3166_1"), EnglishName: r.optStr("english_name")}
		country.Name = r.optStr("name")
		if country.Name == "" {
			country.Name = r.optStr("native_name")
		}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, country)
	}
	return out, nil
}

func parseLanguages(kind, field string, items []map[string]any) ([]Language, error) {
	out := make([]Language, 0, len(items))
	for _, item := range items {
		r := newRecord(kind, field, item)
		language := Language{
			Code:        r.str("iso_639_1"),
			Name:        r.optStr("name"),
			EnglishName: r.optStr("english_name"),
		}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, language)
	}
	return out, nil
}

func parseKeywords(kind, field string, items []map[string]any) ([]Keyword, error) {
	out := make([]Keyword, 0, len(items))
	for _, item := range items {
		r := newRecord(kind, field, item)
		keyword := Keyword{ID: r.integer("id"), Name: r.str("name")}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, keyword)
	}
	return out, nil
}

func parseVideos(kind, field string, items []map[string]any) ([]Video, error) {
	out := make([]Video, 0, len(items))
	for _, item := range items {
		r := newRecord(kind, field, item)
		video := Video{
			ID:       r.str("id"),
			Key:      r.str("key"),
			Name:     r.optStr("name"),
			Site:     r.str("site"),
			Type:     r.optStr("type"),
			Size:     r.optInt("size"),
			Official: r.optBool("official"),
			Language: r.optStr("iso_639_1"),
			Country:  r.optStr("iso_3166_1"),
		}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, video)
	}
	return out, nil
}

func parseReview(kind string, item map[string]any) (Review, error) {
	r := newRecord(kind, "reviews", item)
	review := Review{
		ID:        r.str("id"),
		Author:    r.str("author"),
		Content:   r.str("content"),
		URL:       r.optStr("url"),
		CreatedAt: r.optStr("created_at"),
	}
	if details, ok := item["author_details"].(map[string]any); ok {
		review.Rating = newRecord(kind, "reviews.author_details", details).optFloat("rating")
	}
	return review, r.err
}

func parseVote(kind string, obj map[string]any) (Vote, error) {
	r := newRecord(kind, kind, obj)
	vote := Vote{Average: r.float("vote_average"), Count: r.integer("vote_count")}
	return vote, r.err
}

// externalIDs keeps the non-empty IDs of an external_ids object
func externalIDs(obj map[string]any) map[string]string {
	out := make(map[string]string, len(obj))
	for key, value := range obj {
		if key == "id" {
			continue
		}
		if id := cast.ToString(value); id != "" {
			out[key] = id
		}
	}
	return out
}
