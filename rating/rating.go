// Package rating derives a spot's review summary from its star values.
package rating

import "math"

// Summary is recomputed on every read and never stored.
type Summary struct {
	Count   int      `json:"count"`
	Average *float64 `json:"average"`
}

// Aggregate counts stars and averages them to one decimal. Average is nil
// when there are no reviews.
func Aggregate(stars []int) Summary {
	if len(stars) == 0 {
		return Summary{}
	}
	total := 0
	for _, s := range stars {
		total += s
	}
	avg := math.Round(float64(total)/float64(len(stars))*10) / 10
	return Summary{Count: len(stars), Average: &avg}
}
