package filter

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"
)

// Record is the flattened view of one search or discover result that
// filter expressions are evaluated against.
type Record struct {
	Kind          string
	ID            int
	Title         string
	OriginalTitle string
	Overview      string
	ReleaseDate   string
	Year          int
	Popularity    float64
	Rating        float64
	Votes         int
	Adult         bool
	Language      string
	GenreIDs      []int
	KnownForDept  string
	Data          map[string]any
}

// NewRecord flattens the raw JSON of a result. Movies carry title and
// release_date, shows name and first_air_date, people name only.
func NewRecord(kind string, data map[string]any) Record {
	r := Record{
		Kind:          kind,
		ID:            cast.ToInt(data["id"]),
		Title:         firstString(data, "title", "name"),
		OriginalTitle: firstString(data, "original_title", "original_name"),
		Overview:      cast.ToString(data["overview"]),
		ReleaseDate:   firstString(data, "release_date", "first_air_date"),
		Popularity:    cast.ToFloat64(data["popularity"]),
		Rating:        cast.ToFloat64(data["vote_average"]),
		Votes:         cast.ToInt(data["vote_count"]),
		Adult:         cast.ToBool(data["adult"]),
		Language:      cast.ToString(data["original_language"]),
		KnownForDept:  cast.ToString(data["known_for_department"]),
		Data:          data,
	}
	if len(r.ReleaseDate) >= 4 {
		r.Year, _ = strconv.Atoi(r.ReleaseDate[:4])
	}
	if ids, ok := data["genre_ids"].([]any); ok {
		r.GenreIDs = make([]int, 0, len(ids))
		for _, id := range ids {
			r.GenreIDs = append(r.GenreIDs, cast.ToInt(id))
		}
	}
	return r
}

func (r Record) String() string {
	if r.Year > 0 {
		return fmt.Sprintf("%s %d '%s (%d)'", r.Kind, r.ID, r.Title, r.Year)
	}
	return fmt.Sprintf("%s %d '%s'", r.Kind, r.ID, r.Title)
}

func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := cast.ToString(data[key]); s != "" {
			return s
		}
	}
	return ""
}
