package schema

// RequestMetrics is the demand and cost of a single game request.
type RequestMetrics struct {
	RequestCount  float64 `json:"requestCount" yaml:"requestCount"`
	EstimatedSize float64 `json:"estimatedSize" yaml:"estimatedSize"` // GB
}

// PriorityConfig holds the fully resolved scoring parameters.
type PriorityConfig struct {
	WeightRequestCount        float64 `json:"weightRequestCount" yaml:"weightRequestCount"`
	WeightSize                float64 `json:"weightSize" yaml:"weightSize"`
	SizeBatchThresholdGB      float64 `json:"sizeBatchThresholdGB" yaml:"sizeBatchThresholdGB"` // policy threshold, not read by the score
	MaxRequestCountNormalizer float64 `json:"maxRequestCountNormalizer" yaml:"maxRequestCountNormalizer"`
	MaxSizeNormalizerGB       float64 `json:"maxSizeNormalizerGB" yaml:"maxSizeNormalizerGB"`
}

// PriorityOverrides carries caller-supplied config fields. A nil field keeps
// the default.
type PriorityOverrides struct {
	WeightRequestCount        *float64 `json:"weightRequestCount,omitempty" mapstructure:"weight_request_count"`
	WeightSize                *float64 `json:"weightSize,omitempty" mapstructure:"weight_size"`
	SizeBatchThresholdGB      *float64 `json:"sizeBatchThresholdGB,omitempty" mapstructure:"size_batch_threshold_gb"`
	MaxRequestCountNormalizer *float64 `json:"maxRequestCountNormalizer,omitempty" mapstructure:"max_request_count_normalizer"`
	MaxSizeNormalizerGB       *float64 `json:"maxSizeNormalizerGB,omitempty" mapstructure:"max_size_normalizer_gb"`
}

// DefaultPriorityConfig returns the default scoring parameters.
func DefaultPriorityConfig() PriorityConfig {
	return PriorityConfig{
		WeightRequestCount:        0.6,
		WeightSize:                0.4,
		SizeBatchThresholdGB:      10,
		MaxRequestCountNormalizer: 20,
		MaxSizeNormalizerGB:       50,
	}
}

// PriorityResult is the derived score of a request. It is never stored on the
// request itself.
type PriorityResult struct {
	Score        float64       `json:"score" yaml:"score"`
	Label        PriorityLabel `json:"label" yaml:"label"`
	ScoreRounded float64       `json:"scoreRounded" yaml:"scoreRounded"`
	ColorClass   string        `json:"colorClass" yaml:"colorClass"`
}

// PriorityReport is a single scored request as printed by the CLI.
type PriorityReport struct {
	RequestMetrics `yaml:",inline"`
	PriorityResult `yaml:",inline"`
}
