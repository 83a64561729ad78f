// Package analytics derives aggregate trends and rule-based alerts from
// extraction history.
package analytics

import (
	"github.com/baristalabs/mastrena/internal/extraction"
)

// TrendPeriod labels the window a trend summary covers.
type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "daily"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
	PeriodYearly  TrendPeriod = "yearly"
)

// TrendDirection summarizes where extraction quality is heading.
type TrendDirection string

const (
	DirectionImproving TrendDirection = "improving"
	DirectionStable    TrendDirection = "stable"
	DirectionDeclining TrendDirection = "declining"
)

// AverageParameters holds mean brewing parameters over a window.
type AverageParameters struct {
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	TimeSeconds float64 `json:"time_seconds"`
}

// QualityDistribution counts records per quality class.
type QualityDistribution struct {
	Perfect    int `json:"perfect"`
	Good       int `json:"good"`
	Suboptimal int `json:"suboptimal"`
}

// Trends is an aggregate quality summary over a sequence of records.
type Trends struct {
	Period              TrendPeriod         `json:"period"`
	PerfectRate         float64             `json:"perfect_extraction_rate"` // percent
	AverageParameters   AverageParameters   `json:"avg_parameters"`
	Direction           TrendDirection      `json:"trend_direction"`
	QualityDistribution QualityDistribution `json:"quality_distribution"`
	SampleSize          int                 `json:"sample_size"`
}

// Perfect-rate thresholds for direction classification.
const (
	improvingRate = 75.0
	stableRate    = 50.0
)

// Calculate computes trends over the given records. Pure; an empty input
// yields zeroed averages and a declining direction.
func Calculate(records []extraction.Record, period TrendPeriod) Trends {
	dist := distribution(records)
	rate := perfectRate(records, dist)
	return Trends{
		Period:              period,
		PerfectRate:         rate,
		AverageParameters:   averages(records),
		Direction:           direction(rate),
		QualityDistribution: dist,
		SampleSize:          len(records),
	}
}

func distribution(records []extraction.Record) QualityDistribution {
	var d QualityDistribution
	for _, r := range records {
		switch r.Outcome.Quality {
		case extraction.QualityPerfect:
			d.Perfect++
		case extraction.QualityGood:
			d.Good++
		default:
			d.Suboptimal++
		}
	}
	return d
}

func perfectRate(records []extraction.Record, dist QualityDistribution) float64 {
	if len(records) == 0 {
		return 0
	}
	return float64(dist.Perfect) / float64(len(records)) * 100
}

func averages(records []extraction.Record) AverageParameters {
	if len(records) == 0 {
		return AverageParameters{}
	}

	var sum AverageParameters
	for _, r := range records {
		sum.Temperature += r.Parameters.Temperature
		sum.Pressure += r.Parameters.Pressure
		sum.TimeSeconds += r.Parameters.TimeSeconds
	}

	n := float64(len(records))
	return AverageParameters{
		Temperature: sum.Temperature / n,
		Pressure:    sum.Pressure / n,
		TimeSeconds: sum.TimeSeconds / n,
	}
}

func direction(rate float64) TrendDirection {
	switch {
	case rate > improvingRate:
		return DirectionImproving
	case rate > stableRate:
		return DirectionStable
	default:
		return DirectionDeclining
	}
}
