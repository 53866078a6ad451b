package blogservice

import (
	"math"
	"strings"
)

const readingWordsPerMinute = 200

// estimateReadingTime returns the estimated reading time of the input in
// minutes, at 200 words per minute. The fractional minute is scaled by 0.6
// before rounding; the formula is kept exactly as published at
// https://infusion.media/content-marketing/how-to-calculate-reading-time/
func estimateReadingTime(input string) int {
	t := float64(len(strings.Split(input, " "))) / readingWordsPerMinute

	minutes := math.Floor(t)
	decimal := math.Abs(t) - minutes

	return int(math.Round(minutes + decimal*0.6))
}
