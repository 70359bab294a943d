package service

import "strings"

// DefaultThreshold is the similarity cutoff used when the caller does not
// supply one.
const DefaultThreshold = 0.7

// Scorer decides whether two raw customer names denote the same entity.
type Scorer struct {
	std *Standardizer
}

func NewScorer(std *Standardizer) *Scorer {
	return &Scorer{std: std}
}

// IsSimilar standardizes both names, short-circuits on containment and
// otherwise compares the LCS ratio against threshold. Pure; empty or
// unstandardizable names never match.
func (sc *Scorer) IsSimilar(name1, name2 string, threshold float64) bool {
	if name1 == "" || name2 == "" {
		return false
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	a := sc.std.Standardize(name1)
	b := sc.std.Standardize(name2)
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return lcsRatio(a, b) >= threshold
}
