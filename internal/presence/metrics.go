package presence

import "math"

const (
	MinRating  = 3.0
	MaxRating  = 5.0
	MinReviews = 50
	MaxReviews = 550
)

type Metrics struct {
	Rating  float64
	Reviews int
}

// MetricsGenerator produces a star rating and review count.
type MetricsGenerator struct {
	rnd Random
}

func NewMetricsGenerator(rnd Random) *MetricsGenerator {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &MetricsGenerator{rnd: rnd}
}

// Generate returns a rating in [3.0, 5.0] rounded to one decimal and a
// review count in [50, 550].
func (g *MetricsGenerator) Generate() Metrics {
	rating := math.Round((g.rnd.Float64()*(MaxRating-MinRating)+MinRating)*10) / 10
	return Metrics{
		Rating:  rating,
		Reviews: g.rnd.IntN(MaxReviews-MinReviews+1) + MinReviews,
	}
}
