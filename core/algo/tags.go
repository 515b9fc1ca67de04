// Package algo has the pure classification and scoring logic.
package algo

import (
	"regexp"
	"sort"
	"strings"

	"github.com/madlig/mygameon/schema"
)

// tagRule maps seeds matching a case-insensitive pattern to a canonical label.
type tagRule struct {
	pattern *regexp.Regexp
	label   string
}

// tagRules is evaluated top to bottom; the first match wins.
var tagRules = []tagRule{
	{regexp.MustCompile(`(?i)co-?op`), schema.TagCoop},
	{regexp.MustCompile(`(?i)low.*spec`), schema.TagLowSpec},
	{regexp.MustCompile(`(?i)open.*world`), schema.TagOpenWorld},
	{regexp.MustCompile(`(?i)story|narrative`), schema.TagStoryRich},
	{regexp.MustCompile(`(?i)pixel`), schema.TagPixelArt},
	{regexp.MustCompile(`(?i)aaa|triple a`), schema.TagAAA},
	{regexp.MustCompile(`(?i)keyboard`), schema.TagKeyboardOnly},
	{regexp.MustCompile(`(?i)gamepad|controller`), schema.TagGamepadSupport},
	{regexp.MustCompile(`(?i)multi-?player`), schema.TagMultiplayer},
}

// Genre and title inference.
var (
	storyGenres     = regexp.MustCompile(`(?i)rpg|adventure|visual novel`)
	openWorldGenres = regexp.MustCompile(`(?i)sandbox|open world`)
	pixelGenres     = regexp.MustCompile(`(?i)pixel`)
	aaaTitle        = regexp.MustCompile(`(?i)definitive|remastered|director['’]?s cut`)
)

// TagRule describes one classification rule for display.
type TagRule struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Label   string `json:"label" yaml:"label"`
}

// TagRules returns the classification rules in evaluation order.
func TagRules() []TagRule {
	rules := make([]TagRule, len(tagRules))
	for i, r := range tagRules {
		rules[i] = TagRule{
			Pattern: strings.TrimPrefix(r.pattern.String(), "(?i)"),
			Label:   r.label,
		}
	}
	return rules
}

// orderedSet keeps insertion order and rejects exact duplicates.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		items: make([]string, 0, capacity),
		seen:  make(map[string]struct{}, capacity),
	}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// NormalizeTags maps free-form tags, genres and a title into the canonical
// vocabulary. Seeds that match no rule pass through unchanged. The result has
// no duplicates; canonical labels come first in vocabulary order, followed by
// the pass-through strings in lexicographic order.
func NormalizeTags(tags, genre []string, name string) []string {
	seeds := newOrderedSet(len(tags) + 4)
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			seeds.add(t)
		}
	}

	if anyMatch(genre, storyGenres) {
		seeds.add(schema.TagStoryRich)
	}
	if anyMatch(genre, openWorldGenres) {
		seeds.add(schema.TagOpenWorld)
	}
	if anyMatch(genre, pixelGenres) {
		seeds.add(schema.TagPixelArt)
	}
	if aaaTitle.MatchString(name) {
		seeds.add(schema.TagAAA)
	}

	out := newOrderedSet(len(seeds.items))
	for _, seed := range seeds.items {
		out.add(classify(seed))
	}

	result := out.items
	sort.SliceStable(result, func(i, j int) bool {
		return tagLess(result[i], result[j])
	})
	return result
}

// NormalizeTagInput is NormalizeTags for a whole record.
func NormalizeTagInput(in schema.TagInput) []string {
	return NormalizeTags(in.Tags, in.Genre, in.Name)
}

// classify returns the label of the first rule matching seed, or seed itself.
func classify(seed string) string {
	for _, r := range tagRules {
		if r.pattern.MatchString(seed) {
			return r.label
		}
	}
	return seed
}

func anyMatch(values []string, re *regexp.Regexp) bool {
	for _, v := range values {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// tagLess orders canonical tags by vocabulary index, before every other tag.
func tagLess(a, b string) bool {
	ia, aCanon := schema.CanonicalIndex(a)
	ib, bCanon := schema.CanonicalIndex(b)
	switch {
	case aCanon && bCanon:
		return ia < ib
	case aCanon:
		return true
	case bCanon:
		return false
	default:
		return a < b
	}
}

// BuildTagChips renders the card-level chips for a tag set: the first limit
// canonical tags plus a counter of the canonical tags left out. Pass-through
// tags are never rendered as chips. A negative limit means DefaultChipLimit.
func BuildTagChips(tags, genre []string, name string, limit int) schema.TagChips {
	if limit < 0 {
		limit = schema.DefaultChipLimit
	}
	var canonical []string
	for _, t := range NormalizeTags(tags, genre, name) {
		if schema.IsCanonical(t) {
			canonical = append(canonical, t)
		}
	}
	shown := min(limit, len(canonical))
	return schema.TagChips{
		Chips:    append([]string{}, canonical[:shown]...),
		Overflow: len(canonical) - shown,
	}
}
