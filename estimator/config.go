package estimator

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config carries the thresholds and beam geometry the estimators depend on.
// Values are externally supplied; the pipeline itself never hard-codes them.
type Config struct {
	RangeMin      float64
	RangeMax      float64
	RangeFallback float64

	RightIndex   int
	ForwardIndex int
	LeftIndex    int
	HalfWindow   int
	TrendWindow  int

	LaneConstant  float64
	Velocity      float64
	FirstInterval float64
}

// MPCConfig returns the defaults for the full-pose variant.
func MPCConfig() Config {
	c := baseConfig()
	c.Velocity = DefaultMPCVelocity
	return c
}

// PIDConfig returns the defaults for the scalar heading-error variant.
func PIDConfig() Config {
	c := baseConfig()
	c.Velocity = DefaultPIDVelocity
	return c
}

func baseConfig() Config {
	return Config{
		RangeMin:      DefaultRangeMin,
		RangeMax:      DefaultRangeMax,
		RangeFallback: DefaultRangeFallback,
		RightIndex:    RightBeamIndex,
		ForwardIndex:  ForwardBeamIndex,
		LeftIndex:     LeftBeamIndex,
		HalfWindow:    DefaultHalfWindow,
		TrendWindow:   DefaultTrendWindow,
		LaneConstant:  DefaultLaneConstant,
		FirstInterval: DefaultFirstInterval,
	}
}

// Tuning is the JSON override schema. All fields are optional; absent fields
// leave the compiled-in defaults untouched.
type Tuning struct {
	RangeMin      *float64 `json:"range_min,omitempty"`
	RangeMax      *float64 `json:"range_max,omitempty"`
	RangeFallback *float64 `json:"range_fallback,omitempty"`
	RightIndex    *int     `json:"right_index,omitempty"`
	ForwardIndex  *int     `json:"forward_index,omitempty"`
	LeftIndex     *int     `json:"left_index,omitempty"`
	HalfWindow    *int     `json:"half_window,omitempty"`
	TrendWindow   *int     `json:"trend_window,omitempty"`
	LaneConstant  *float64 `json:"lane_constant,omitempty"`
	Velocity      *float64 `json:"velocity,omitempty"`
	FirstInterval *float64 `json:"first_interval,omitempty"`
}

// LoadTuning reads a tuning override file.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Tuning
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	return &t, nil
}

// Apply overlays the non-nil tuning fields onto cfg.
func (t *Tuning) Apply(cfg *Config) {
	if t == nil {
		return
	}
	if t.RangeMin != nil {
		cfg.RangeMin = *t.RangeMin
	}
	if t.RangeMax != nil {
		cfg.RangeMax = *t.RangeMax
	}
	if t.RangeFallback != nil {
		cfg.RangeFallback = *t.RangeFallback
	}
	if t.RightIndex != nil {
		cfg.RightIndex = *t.RightIndex
	}
	if t.ForwardIndex != nil {
		cfg.ForwardIndex = *t.ForwardIndex
	}
	if t.LeftIndex != nil {
		cfg.LeftIndex = *t.LeftIndex
	}
	if t.HalfWindow != nil {
		cfg.HalfWindow = *t.HalfWindow
	}
	if t.TrendWindow != nil {
		cfg.TrendWindow = *t.TrendWindow
	}
	if t.LaneConstant != nil {
		cfg.LaneConstant = *t.LaneConstant
	}
	if t.Velocity != nil {
		cfg.Velocity = *t.Velocity
	}
	if t.FirstInterval != nil {
		cfg.FirstInterval = *t.FirstInterval
	}
}
