package cinema

import "github.com/ssargent/cinedb/pkg/serial"

// Type tags used in storage keys and by Registry.
const (
	TagMovie    = "movie"
	TagReview   = "review"
	TagCinema   = "cinema"
	TagCineplex = "cineplex"
	TagShowing  = "showing"
)

// Registry knows how to construct every cinema record by tag.
var Registry = serial.NewRegistry()

func init() {
	Registry.Register(TagMovie, func() serial.Record { return new(Movie) })
	Registry.Register(TagReview, func() serial.Record { return new(Review) })
	Registry.Register(TagCinema, func() serial.Record { return new(Cinema) })
	Registry.Register(TagCineplex, func() serial.Record { return new(Cineplex) })
	Registry.Register(TagShowing, func() serial.Record { return new(Showing) })
}
