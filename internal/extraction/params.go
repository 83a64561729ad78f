// Package extraction holds the espresso extraction domain: brewing
// parameters, their validation, and the deterministic simulation model.
package extraction

import "time"

// RawParameters carries unparsed request inputs. An empty string means the
// parameter was absent and the configured default applies.
type RawParameters struct {
	Temperature string
	Pressure    string
	TimeSeconds string
}

// Parameters is a validated, immutable set of brewing parameters.
type Parameters struct {
	Temperature float64 `json:"temperature"`  // °C
	Pressure    float64 `json:"pressure"`     // bar
	TimeSeconds float64 `json:"time_seconds"` // s
}

// Quality classifies an extraction outcome.
type Quality string

const (
	QualityPerfect    Quality = "perfect"
	QualityGood       Quality = "good"
	QualitySuboptimal Quality = "suboptimal"
)

// Outcome is the derived result of simulating one extraction.
type Outcome struct {
	Score         float64 `json:"score"` // [0,100]
	Quality       Quality `json:"quality"`
	YieldRatio    float64 `json:"yield_ratio"` // estimated extraction yield
	WaterVolumeOz float64 `json:"water_volume_oz"`
}

// Record is the persisted result of one extraction. Created once, never
// mutated, never deleted.
type Record struct {
	ID         uint64     `json:"id"`
	Parameters Parameters `json:"parameters"`
	Outcome    Outcome    `json:"outcome"`
	CreatedAt  time.Time  `json:"created_at"`
}
