package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/llehouerou/picker/internal/option"
)

// Ranked performs trigram-based search with multi-word support and orders
// results by score, best first. Ties keep their original order.
type Ranked[T any] struct {
	Keys Keys[T]
}

type scored struct {
	index int
	score float64
}

// Match implements Matcher.
// Query is split into words, each word must match (AND logic).
func (r Ranked[T]) Match(opts []option.Option[T], query string, deep bool) []option.Option[T] {
	words := strings.Fields(normalize(query))
	if len(words) == 0 {
		return opts
	}

	wordTrigrams := make([]map[string]struct{}, len(words))
	for i, word := range words {
		wordTrigrams[i] = generateTrigrams(word)
	}

	var matches []scored
	for i, o := range opts {
		text := normalize(strings.Join(r.texts(o, deep), " "))
		score := scoreText(text, words, wordTrigrams)
		if score > 0 {
			matches = append(matches, scored{index: i, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]option.Option[T], len(matches))
	for i, m := range matches {
		out[i] = opts[m.index]
	}
	return out
}

func (r Ranked[T]) texts(o option.Option[T], deep bool) []string {
	texts := r.Keys.Texts(o.Value)
	if deep {
		for _, child := range o.SubMenu {
			texts = append(texts, r.Keys.Texts(child.Value)...)
		}
	}
	return texts
}

// scoreText calculates how well text matches the query words.
// All words must match for a non-zero score.
func scoreText(text string, words []string, wordTrigrams []map[string]struct{}) float64 {
	textTris := generateTrigrams(text)
	totalScore := 0.0

	for i, word := range words {
		// For short words (1-2 chars), use substring match
		if utf8.RuneCountInString(word) <= 2 {
			if !strings.Contains(text, word) {
				return 0
			}
			totalScore += 1.0
			continue
		}

		similarity := trigramCoverage(wordTrigrams[i], textTris)
		if strings.Contains(text, word) {
			similarity += 0.5
		}
		if similarity < 0.4 {
			// Allow a single typo on longer words
			if !nearWord(text, word) {
				return 0
			}
			similarity = 0.4
		}

		totalScore += similarity
	}

	return totalScore / float64(len(words))
}

// nearWord reports whether any word of text is within one edit of word.
func nearWord(text, word string) bool {
	if utf8.RuneCountInString(word) < 4 {
		return false
	}
	for _, w := range strings.Fields(text) {
		if levenshtein.ComputeDistance(w, word) <= 1 {
			return true
		}
	}
	return false
}

// normalize lowercases and removes diacritics for matching.
func normalize(s string) string {
	return RemoveDiacritics(strings.ToLower(s))
}

// generateTrigrams creates the set of trigrams for a string.
// Pads with spaces at start/end for better prefix/suffix matching.
func generateTrigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	tris := make(map[string]struct{})

	padded := "  " + s + "  "
	runes := []rune(padded)

	for i := 0; i <= len(runes)-3; i++ {
		tri := string(runes[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}

	return tris
}

// trigramCoverage calculates what fraction of query trigrams are found in the item.
// Returns |A ∩ B| / |A| - better for partial word matching than Jaccard.
func trigramCoverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}

	intersection := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(len(query))
}

// RemoveDiacritics removes combining marks so "cafe" matches "café" once the
// text is in decomposed form.
func RemoveDiacritics(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
