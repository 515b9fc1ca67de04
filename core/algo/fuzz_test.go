package algo

import (
	"strings"
	"testing"

	"github.com/madlig/mygameon/schema"
)

// FuzzNormalizeTags checks set semantics and ordering on arbitrary input.
func FuzzNormalizeTags(f *testing.F) {
	f.Add("Controller Support|coop mode", "RPG", "Final Fantasy Remastered")
	f.Add("", "", "")
	f.Add("Indie|indie|INDIE| Indie ", "sandbox|pixel", "Director's Cut")

	f.Fuzz(func(t *testing.T, rawTags, rawGenre, name string) {
		got := NormalizeTags(strings.Split(rawTags, "|"), strings.Split(rawGenre, "|"), name)

		seen := make(map[string]struct{}, len(got))
		lastCanon := -1
		inPassThrough := false
		prev := ""
		for _, tag := range got {
			if _, dup := seen[tag]; dup {
				t.Fatalf("duplicate tag %q in %v", tag, got)
			}
			seen[tag] = struct{}{}

			if idx, ok := schema.CanonicalIndex(tag); ok {
				if inPassThrough {
					t.Fatalf("canonical tag %q after pass-through in %v", tag, got)
				}
				if idx <= lastCanon {
					t.Fatalf("canonical tags out of order in %v", got)
				}
				lastCanon = idx
				continue
			}
			if inPassThrough && tag < prev {
				t.Fatalf("pass-through tags not sorted in %v", got)
			}
			inPassThrough = true
			prev = tag
		}
	})
}

// FuzzComputePriority checks the score always stays within [0,1].
func FuzzComputePriority(f *testing.F) {
	f.Add(20.0, 0.0, 0.6, 0.4, 20.0, 50.0)
	f.Add(-5.0, 1e9, 3.0, 3.0, 0.0, -1.0)

	f.Fuzz(func(t *testing.T, count, size, wReq, wSize, maxReq, maxSize float64) {
		cfg := schema.PriorityConfig{
			WeightRequestCount:        wReq,
			WeightSize:                wSize,
			MaxRequestCountNormalizer: maxReq,
			MaxSizeNormalizerGB:       maxSize,
		}
		got := ComputePriority(schema.RequestMetrics{RequestCount: count, EstimatedSize: size}, cfg)
		if got.Score < 0 || got.Score > 1 || got.Score != got.Score {
			t.Fatalf("score %v out of range", got.Score)
		}
		if got.Label != LabelForScore(got.Score) {
			t.Fatalf("label %q does not match score %v", got.Label, got.Score)
		}
	})
}
