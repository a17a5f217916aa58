package server

import (
	"fmt"
	"time"

	"lanescan-go/estimator"
)

const (
	VariantMPC = "mpc"
	VariantPID = "pid"
)

// Estimate is the union of the two variant outputs; exactly one field is set.
type Estimate struct {
	Pose    *estimator.PoseEstimate
	Heading *estimator.HeadingErrorEstimate
}

// Pipeline is one configured estimation strategy. The two variants are
// selected at startup, not subclassed; both share the sanitization and
// averaging primitives underneath.
type Pipeline interface {
	Variant() string
	Process(ranges []float64, now time.Time) (Estimate, error)
}

// NewPipeline builds the pipeline for the named variant.
func NewPipeline(variant string, cfg estimator.Config) (Pipeline, error) {
	switch variant {
	case VariantMPC:
		return &mpcPipeline{est: estimator.NewPoseEstimator(cfg)}, nil
	case VariantPID:
		return &pidPipeline{est: estimator.NewHeadingErrorEstimator(cfg)}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

type mpcPipeline struct {
	est *estimator.PoseEstimator
}

func (p *mpcPipeline) Variant() string { return VariantMPC }

func (p *mpcPipeline) Process(ranges []float64, now time.Time) (Estimate, error) {
	pose, err := p.est.Estimate(ranges, now)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{Pose: &pose}, nil
}

type pidPipeline struct {
	est *estimator.HeadingErrorEstimator
}

func (p *pidPipeline) Variant() string { return VariantPID }

func (p *pidPipeline) Process(ranges []float64, now time.Time) (Estimate, error) {
	he, err := p.est.Estimate(ranges)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{Heading: &he}, nil
}
