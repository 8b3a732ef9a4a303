package catalog

import "math"

// RatingBucket is the count and share of reviews for a single star value
type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingSummary aggregates a product's reviews into an average rating and a
// five-bucket distribution. Both are derived on read, never stored.
type RatingSummary struct {
	Average      float64        `json:"avgRating"`
	ReviewCount  int            `json:"reviewCount"`
	Distribution []RatingBucket `json:"ratingDistribution"`
}

// SummarizeRatings computes the rating summary for a set of reviews.
// The average is the mean rounded to one decimal, 0 when there are no
// reviews. Each star value 1..5 gets a bucket with its count and the share
// of reviews as a percentage rounded to one decimal.
func SummarizeRatings(reviews []Review) RatingSummary {
	counts := [6]int{}
	sum := 0
	for _, review := range reviews {
		if review.Rating >= 1 && review.Rating <= 5 {
			counts[review.Rating]++
			sum += review.Rating
		}
	}

	total := len(reviews)
	summary := RatingSummary{
		ReviewCount:  total,
		Distribution: make([]RatingBucket, 5),
	}

	if total > 0 {
		summary.Average = roundToTenth(float64(sum) / float64(total))
	}

	for star := 1; star <= 5; star++ {
		bucket := RatingBucket{Rating: star, Count: counts[star]}
		if total > 0 {
			bucket.Percentage = roundToTenth(float64(counts[star]) / float64(total) * 100)
		}
		summary.Distribution[star-1] = bucket
	}

	return summary
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
