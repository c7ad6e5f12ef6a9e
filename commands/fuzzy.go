package commands

import "strings"

// defaultSimilarityThreshold is the minimum Jaro-Winkler similarity a
// suggestion has to strictly exceed.
const defaultSimilarityThreshold = 0.82

// winklerScalingFactor weights the common-prefix bonus.
const winklerScalingFactor = 0.1

// FuzzyOptions configure fuzzy command matching.
type FuzzyOptions struct {
	// Threshold overrides the similarity threshold. Zero means 0.82.
	Threshold float64
	// IgnoreCase folds case before comparing.
	IgnoreCase bool
	// IgnoreLocalization matches against every localization of every
	// command instead of one language's view.
	IgnoreLocalization bool
	// Language is an IETF tag; only its primary subtag is used, and only
	// when that subtag is an ISO 639-1 code.
	Language string
}

// FuzzyOption overrides a single fuzzy-matching option.
type FuzzyOption func(*FuzzyOptions)

// WithFuzzyThreshold overrides the similarity threshold.
func WithFuzzyThreshold(threshold float64) FuzzyOption {
	return func(o *FuzzyOptions) {
		o.Threshold = threshold
	}
}

// WithFuzzyIgnoreCase folds case before comparing.
func WithFuzzyIgnoreCase() FuzzyOption {
	return func(o *FuzzyOptions) {
		o.IgnoreCase = true
	}
}

// WithIgnoreLocalization matches against every localization.
func WithIgnoreLocalization() FuzzyOption {
	return func(o *FuzzyOptions) {
		o.IgnoreLocalization = true
	}
}

// WithFuzzyLanguage sets the localization language.
func WithFuzzyLanguage(tag string) FuzzyOption {
	return func(o *FuzzyOptions) {
		o.Language = tag
	}
}

func buildFuzzyOptions(opts []FuzzyOption) FuzzyOptions {
	var cfg FuzzyOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FuzzyResult is the best-scoring candidate of a fuzzy match.
type FuzzyResult struct {
	Command    CommandElemental
	Similarity float64
}

// JaroDistance computes the Jaro similarity of two strings in [0,1].
// An empty string yields 0, even against another empty string.
func JaroDistance(s1, s2 string) float64 {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}

	matchWindow := max(len(r1), len(r2))/2 - 1
	matched1 := make([]bool, len(r1))
	matched2 := make([]bool, len(r2))

	m := 0
	for i := range r1 {
		start := max(0, i-matchWindow)
		end := min(i+matchWindow+1, len(r2))
		for k := start; k < end; k++ {
			if matched2[k] || r1[i] != r2[k] {
				continue
			}
			matched1[i] = true
			matched2[k] = true
			m++
			break
		}
	}
	if m == 0 {
		return 0
	}

	// Transpositions: walk the matched characters of both strings in order
	// and count aligned pairs that differ, halving at the end.
	t := 0.0
	k := 0
	for i := range r1 {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if r1[i] != r2[k] {
			t++
		}
		k++
	}
	t /= 2

	fm := float64(m)
	return (fm/float64(len(r1)) + fm/float64(len(r2)) + (fm-t)/fm) / 3
}

// JaroWinkler computes the Jaro-Winkler similarity of two strings in [0,1]:
// the Jaro similarity boosted by a bonus for a shared prefix of up to four
// characters. Identical strings score exactly 1.
func JaroWinkler(s1, s2 string, ignoreCase bool) float64 {
	if s1 == s2 {
		return 1
	}
	if ignoreCase {
		s1 = strings.ToLower(s1)
		s2 = strings.ToLower(s2)
	}

	jaro := JaroDistance(s1, s2)

	r1, r2 := []rune(s1), []rune(s2)
	l := 0
	for l < 4 && l < len(r1) && l < len(r2) && r1[l] == r2[l] {
		l++
	}
	return jaro + float64(l)*winklerScalingFactor*(1-jaro)
}

// FuzzyMatch returns the group command whose name scores highest against
// input, or nil when no candidate strictly exceeds the threshold. Ties keep
// the first maximum. Pattern names participate through their source text.
func FuzzyMatch(input string, group *Group, opts FuzzyOptions) *FuzzyResult {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = defaultSimilarityThreshold
	}

	language := ""
	if !opts.IgnoreLocalization {
		language = resolveLanguage(opts.Language)
	}

	best := FuzzyResult{}
	found := false
	for _, candidate := range group.ToElementals(language) {
		similarity := JaroWinkler(input, candidate.Name, opts.IgnoreCase)
		if similarity > best.Similarity {
			best = FuzzyResult{Command: candidate, Similarity: similarity}
			found = true
		}
	}
	if !found || best.Similarity <= threshold {
		return nil
	}
	return &best
}
