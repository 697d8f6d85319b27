package search

import (
	"testing"

	"github.com/llehouerou/picker/internal/option"
)

func TestGenerateTrigrams(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "simple word",
			input:    "cat",
			contains: []string{"  c", " ca", "cat", "at "},
			excludes: []string{"   "},
		},
		{
			name:     "two words",
			input:    "ab cd",
			contains: []string{"ab ", "b c", " cd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := generateTrigrams(tt.input)
			for _, want := range tt.contains {
				if _, ok := tris[want]; !ok {
					t.Errorf("generateTrigrams(%q) missing %q", tt.input, want)
				}
			}
			for _, bad := range tt.excludes {
				if _, ok := tris[bad]; ok {
					t.Errorf("generateTrigrams(%q) should not contain %q", tt.input, bad)
				}
			}
		})
	}

	if generateTrigrams("") != nil {
		t.Error("generateTrigrams(\"\") should be nil")
	}
}

func TestTrigramCoverage(t *testing.T) {
	q := generateTrigrams("cat")
	if got := trigramCoverage(q, generateTrigrams("cat")); got != 1 {
		t.Errorf("coverage of identical = %v, want 1", got)
	}
	if got := trigramCoverage(q, generateTrigrams("dog")); got != 0 {
		t.Errorf("coverage of disjoint = %v, want 0", got)
	}
	if got := trigramCoverage(nil, generateTrigrams("dog")); got != 0 {
		t.Errorf("coverage of empty query = %v, want 0", got)
	}
}

func TestRanked_Match(t *testing.T) {
	m := Ranked[entry]{Keys: labelKeys}

	t.Run("exact word ranks first", func(t *testing.T) {
		got := labels(m.Match(sampleOptions(), "apple", false))
		if len(got) != 2 {
			t.Fatalf("got %v, want Apple and Pineapple", got)
		}
		if got[0] != "Apple" {
			t.Errorf("first = %q, want Apple", got[0])
		}
	})

	t.Run("all words must match", func(t *testing.T) {
		got := labels(m.Match(sampleOptions(), "apple zebra", false))
		if len(got) != 0 {
			t.Errorf("got %v, want none", got)
		}
	})

	t.Run("single typo tolerated", func(t *testing.T) {
		got := labels(m.Match(sampleOptions(), "banxna", false))
		if len(got) != 1 || got[0] != "Banana" {
			t.Errorf("got %v, want [Banana]", got)
		}
	})

	t.Run("deep probes children", func(t *testing.T) {
		got := labels(m.Match(sampleOptions(), "carrot", true))
		if len(got) != 1 || got[0] != "Vegetables" {
			t.Errorf("got %v, want [Vegetables]", got)
		}
	})

	t.Run("blank query returns input", func(t *testing.T) {
		opts := []option.Option[entry]{option.New(entry{label: "x"})}
		if got := m.Match(opts, "   ", false); len(got) != 1 {
			t.Errorf("got %d results, want 1", len(got))
		}
	})
}

func TestNearWord(t *testing.T) {
	tests := []struct {
		text, word string
		want       bool
	}{
		{"banana split", "banxna", true},
		{"banana split", "split", true},
		{"banana split", "spilt", false},
		{"cat", "cax", false}, // too short for typo tolerance
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := nearWord(tt.text, tt.word); got != tt.want {
				t.Errorf("nearWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
			}
		})
	}
}
