package obstacle

import "math/rand"

var distractorOffsets = [...]int{-10, -2, -1, 1, 2, 10}

// Distractor returns a positive wrong answer near correct.
// The candidate offsets are tried in a random order; +1 always qualifies, so a
// result is guaranteed for any correct >= 0.
func Distractor(correct int, rng *rand.Rand) int {
	offsets := distractorOffsets
	rng.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})
	for _, off := range offsets {
		if v := correct + off; v > 0 && v != correct {
			return v
		}
	}
	return correct + 1
}
