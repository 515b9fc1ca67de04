package schema

// Canonical tag labels. The order of CanonicalVocabulary defines sort priority.
const (
	TagCoop           = "Co-op"
	TagLowSpec        = "Low Spec"
	TagOpenWorld      = "Open World"
	TagStoryRich      = "Story Rich"
	TagPixelArt       = "Pixel Art"
	TagAAA            = "AAA"
	TagKeyboardOnly   = "Keyboard Only"
	TagGamepadSupport = "Gamepad Support"
	TagMultiplayer    = "Multiplayer"
)

// CanonicalVocabulary is the fixed, ordered set of canonical tags.
var CanonicalVocabulary = []string{
	TagCoop,
	TagLowSpec,
	TagOpenWorld,
	TagStoryRich,
	TagPixelArt,
	TagAAA,
	TagKeyboardOnly,
	TagGamepadSupport,
	TagMultiplayer,
}

var canonicalIndex = func() map[string]int {
	idx := make(map[string]int, len(CanonicalVocabulary))
	for i, tag := range CanonicalVocabulary {
		idx[tag] = i
	}
	return idx
}()

// CanonicalIndex returns the vocabulary position of tag, or false when tag
// is not canonical. Comparison is exact.
func CanonicalIndex(tag string) (int, bool) {
	i, ok := canonicalIndex[tag]
	return i, ok
}

// IsCanonical reports whether tag belongs to the canonical vocabulary.
func IsCanonical(tag string) bool {
	_, ok := canonicalIndex[tag]
	return ok
}

// TagInput is the raw material for tag normalization.
type TagInput struct {
	Tags  []string `json:"tags" yaml:"tags"`
	Genre []string `json:"genre" yaml:"genre"`
	Name  string   `json:"name" yaml:"name"`
}

// TagResult pairs a normalized tag set with the record it came from.
type TagResult struct {
	ObjectID string   `json:"objectID" yaml:"objectID"`
	Name     string   `json:"name" yaml:"name"`
	RawTags  []string `json:"rawTags" yaml:"rawTags"`
	Genre    []string `json:"genre" yaml:"genre"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// TagChips is the display-time rendering of a tag set on a catalog card.
type TagChips struct {
	Chips    []string `json:"chips" yaml:"chips"`
	Overflow int      `json:"overflow" yaml:"overflow"`
}

// CardResult is a normalized record together with its chip rendering.
type CardResult struct {
	TagResult `yaml:",inline"`
	TagChips  `yaml:",inline"`
}

// VocabularyEntry is one canonical tag and the seed patterns that produce it.
type VocabularyEntry struct {
	Rank     int      `json:"rank" yaml:"rank"`
	Tag      string   `json:"tag" yaml:"tag"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}
