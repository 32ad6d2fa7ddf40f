package fuzzy

import "math"

// Scorer calculates the score of a successful subsequence match.
type Scorer interface {
	// Score rates a match.
	//
	// Parameters:
	//   - queryRunes: the query as typed (original case)
	//   - textRunes: the candidate text (original case)
	//   - lowerText: textRunes lowercased
	//   - matches: rune indices of matched characters in text
	Score(queryRunes, textRunes, lowerText []rune, matches []int) int
}

// WeightedScorer scores matches with configurable bonuses.
type WeightedScorer struct {
	// ConsecutiveBonus is added for each match directly after the previous
	// one. The first match counts as consecutive when it is at index 0.
	ConsecutiveBonus int

	// WordStartBonus is added for matches at index 0 or after a space,
	// hyphen or underscore.
	WordStartBonus int

	// ExactCaseBonus is added when the matched character has the same
	// case in query and text.
	ExactCaseBonus int

	// DensityScale multiplies matched/len(text) before rounding.
	DensityScale float64
}

// DefaultWeights returns the standard palette weights.
func DefaultWeights() WeightedScorer {
	return WeightedScorer{
		ConsecutiveBonus: 2,
		WordStartBonus:   3,
		ExactCaseBonus:   1,
		DensityScale:     10,
	}
}

// Score implements Scorer.
func (s WeightedScorer) Score(queryRunes, textRunes, lowerText []rune, matches []int) int {
	if len(matches) == 0 || len(textRunes) == 0 {
		return 0
	}

	score := 0
	last := -1
	for qi, idx := range matches {
		if idx == last+1 {
			score += s.ConsecutiveBonus
		}
		if isWordStart(lowerText, idx) {
			score += s.WordStartBonus
		}
		if qi < len(queryRunes) && queryRunes[qi] == textRunes[idx] {
			score += s.ExactCaseBonus
		}
		last = idx
	}

	density := float64(len(matches)) / float64(len(textRunes)) * s.DensityScale
	return score + int(math.Round(density))
}

// isWordStart reports whether idx begins a word.
func isWordStart(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	switch runes[idx-1] {
	case ' ', '-', '_':
		return true
	}
	return false
}
