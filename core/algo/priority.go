package algo

import (
	"math"

	"github.com/madlig/mygameon/schema"
)

// Presentation hints per label.
const (
	ColorHot     = "red-accent"
	ColorNormal  = "amber-accent"
	ColorNeutral = "neutral"
)

// MergePriorityConfig applies the non-nil overrides on top of the defaults.
func MergePriorityConfig(o schema.PriorityOverrides) schema.PriorityConfig {
	return ApplyPriorityOverrides(schema.DefaultPriorityConfig(), o)
}

// ApplyPriorityOverrides applies the non-nil overrides on top of base.
func ApplyPriorityOverrides(base schema.PriorityConfig, o schema.PriorityOverrides) schema.PriorityConfig {
	if o.WeightRequestCount != nil {
		base.WeightRequestCount = *o.WeightRequestCount
	}
	if o.WeightSize != nil {
		base.WeightSize = *o.WeightSize
	}
	if o.SizeBatchThresholdGB != nil {
		base.SizeBatchThresholdGB = *o.SizeBatchThresholdGB
	}
	if o.MaxRequestCountNormalizer != nil {
		base.MaxRequestCountNormalizer = *o.MaxRequestCountNormalizer
	}
	if o.MaxSizeNormalizerGB != nil {
		base.MaxSizeNormalizerGB = *o.MaxSizeNormalizerGB
	}
	return base
}

// ComputePriority scores a request in [0,1] from its demand and size.
// Weights are not required to sum to 1; the final clamp absorbs any overflow.
func ComputePriority(m schema.RequestMetrics, cfg schema.PriorityConfig) schema.PriorityResult {
	count := finiteOrZero(m.RequestCount)
	size := finiteOrZero(m.EstimatedSize)

	reqNorm := saturate(count, cfg.MaxRequestCountNormalizer)
	sizeScore := 1 - saturate(size, cfg.MaxSizeNormalizerGB)

	score := clamp01(finiteOrZero(cfg.WeightRequestCount*reqNorm + cfg.WeightSize*sizeScore))
	label := LabelForScore(score)

	return schema.PriorityResult{
		Score:        score,
		Label:        label,
		ScoreRounded: math.Round(score*100) / 100,
		ColorClass:   ColorClass(label),
	}
}

// ComputeRequestPriority scores a stored request.
func ComputeRequestPriority(r schema.GameRequest, cfg schema.PriorityConfig) schema.RankedRequest {
	return schema.RankedRequest{
		GameRequest:    r,
		PriorityResult: ComputePriority(r.Metrics(), cfg),
	}
}

// LabelForScore maps a score to its label; thresholds are checked top-down.
func LabelForScore(score float64) schema.PriorityLabel {
	switch {
	case score >= schema.HotThreshold:
		return schema.HotLabel
	case score >= schema.NormalThreshold:
		return schema.NormalLabel
	default:
		return schema.BatchLaterLabel
	}
}

// ColorClass returns the presentation hint for a label.
func ColorClass(label schema.PriorityLabel) string {
	switch label {
	case schema.HotLabel:
		return ColorHot
	case schema.NormalLabel:
		return ColorNormal
	default:
		return ColorNeutral
	}
}

// saturate returns min(v/maxV, 1), with 0/0 taken as 0.
func saturate(v, maxV float64) float64 {
	return finiteOrZero(math.Min(v/maxV, 1))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
