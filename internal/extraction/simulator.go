package extraction

import (
	"math"

	"github.com/baristalabs/mastrena/internal/config"
)

// Extraction model constants. The score is a weighted deviation-from-ideal:
// each parameter's absolute distance from the configured default (treated as
// the ideal) is normalized by the largest distance the validated range allows,
// weighted, and subtracted from a perfect 100.
const (
	weightTemperature = 0.40
	weightPressure    = 0.35
	weightTime        = 0.25

	scorePerfect = 90.0
	scoreGood    = 70.0

	// Estimated yield ratio spans 14%–24%, scaled linearly with the score.
	yieldFloor = 0.14
	yieldSpan  = 0.10

	waterVolumeOz = 8.0
)

// Simulator derives extraction outcomes from validated parameters. It is a
// pure function of its inputs: same parameters, same outcome, every time.
type Simulator struct {
	brewing config.BrewingConfig
}

// NewSimulator creates a simulator bound to the given brewing configuration.
func NewSimulator(brewing config.BrewingConfig) *Simulator {
	return &Simulator{brewing: brewing}
}

// Simulate computes the outcome for validated parameters. Total over the
// validated domain: range checks upstream guarantee every input is within the
// modeled bounds, so no error path exists here.
func (s *Simulator) Simulate(params Parameters) Outcome {
	dev := weightTemperature*deviation(params.Temperature, s.brewing.Defaults.Temperature, s.brewing.Temperature) +
		weightPressure*deviation(params.Pressure, s.brewing.Defaults.Pressure, s.brewing.Pressure) +
		weightTime*deviation(params.TimeSeconds, s.brewing.Defaults.TimeSeconds, s.brewing.TimeSeconds)

	score := round2(clamp(100*(1-dev), 0, 100))

	return Outcome{
		Score:         score,
		Quality:       classify(score),
		YieldRatio:    round4(yieldFloor + yieldSpan*score/100),
		WaterVolumeOz: waterVolumeOz,
	}
}

// deviation normalizes |value−ideal| by the largest distance from the ideal
// to either bound, yielding a value in [0,1] for in-range inputs.
func deviation(value, ideal float64, bounds config.Range) float64 {
	span := math.Max(bounds.Max-ideal, ideal-bounds.Min)
	if span == 0 {
		return 0
	}
	return math.Abs(value-ideal) / span
}

func classify(score float64) Quality {
	switch {
	case score >= scorePerfect:
		return QualityPerfect
	case score >= scoreGood:
		return QualityGood
	default:
		return QualitySuboptimal
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
