package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/extraction"
)

// AlertSeverity grades an alert's urgency.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// AlertCategory groups alerts by cause.
type AlertCategory string

const (
	CategoryExtractionQuality  AlertCategory = "extraction_quality"
	CategoryParameterDeviation AlertCategory = "parameter_deviation"
	CategoryPerformanceTrend   AlertCategory = "performance_trend"
	CategorySystemHealth       AlertCategory = "system_health"
)

// Alert is a single generated warning about extraction behavior.
type Alert struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Severity  AlertSeverity  `json:"severity"`
	Category  AlertCategory  `json:"category"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AlertRule evaluates one condition against a new record and the recent
// session window. A nil result means the rule did not fire.
type AlertRule struct {
	Name      string
	Condition func(record extraction.Record, session []extraction.Record) *Alert
}

// AlertGenerator evaluates a fixed rule set per extraction.
type AlertGenerator struct {
	rules []AlertRule
}

// NewAlertGenerator builds the standard rule set from brewing configuration.
// The deviation rules use a tightened band around the ideal (half the distance
// to each bound): values that validate fine can still brew badly.
func NewAlertGenerator(brewing config.BrewingConfig) *AlertGenerator {
	return &AlertGenerator{
		rules: []AlertRule{
			lowSessionQualityRule(),
			temperatureDeviationRule(brewing),
			pressureInstabilityRule(brewing),
		},
	}
}

// Generate evaluates every rule against the new record. session holds the
// most recent records (including the new one) for windowed rules.
func (g *AlertGenerator) Generate(record extraction.Record, session []extraction.Record) []Alert {
	var alerts []Alert
	for _, rule := range g.rules {
		if a := rule.Condition(record, session); a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts
}

// Perfect-rate floor for the session quality rule, in [0,1].
const sessionPerfectFloor = 0.4

func lowSessionQualityRule() AlertRule {
	return AlertRule{
		Name: "Low Perfect Extraction Rate",
		Condition: func(_ extraction.Record, session []extraction.Record) *Alert {
			if len(session) < 3 {
				// Too few pulls to call a trend.
				return nil
			}
			perfect := 0
			for _, r := range session {
				if r.Outcome.Quality == extraction.QualityPerfect {
					perfect++
				}
			}
			rate := float64(perfect) / float64(len(session))
			if rate >= sessionPerfectFloor {
				return nil
			}
			return newAlert(SeverityWarning, CategoryExtractionQuality,
				"Low perfect extraction rate detected.",
				map[string]any{"perfect_rate": rate, "window": len(session)})
		},
	}
}

func temperatureDeviationRule(brewing config.BrewingConfig) AlertRule {
	band := tighten(brewing.Temperature, brewing.Defaults.Temperature)
	return AlertRule{
		Name: "Temperature Deviation",
		Condition: func(record extraction.Record, _ []extraction.Record) *Alert {
			if band.Contains(record.Parameters.Temperature) {
				return nil
			}
			return newAlert(SeverityCritical, CategoryParameterDeviation,
				fmt.Sprintf("Temperature outside preferred band [%.1f, %.1f]", band.Min, band.Max),
				map[string]any{"temperature": record.Parameters.Temperature})
		},
	}
}

func pressureInstabilityRule(brewing config.BrewingConfig) AlertRule {
	band := tighten(brewing.Pressure, brewing.Defaults.Pressure)
	return AlertRule{
		Name: "Pressure Instability",
		Condition: func(record extraction.Record, _ []extraction.Record) *Alert {
			if band.Contains(record.Parameters.Pressure) {
				return nil
			}
			return newAlert(SeverityWarning, CategoryParameterDeviation,
				fmt.Sprintf("Pressure outside stable band [%.1f, %.1f]", band.Min, band.Max),
				map[string]any{"pressure": record.Parameters.Pressure})
		},
	}
}

// tighten halves the distance from the ideal to each bound.
func tighten(r config.Range, ideal float64) config.Range {
	return config.Range{
		Min: ideal - (ideal-r.Min)/2,
		Max: ideal + (r.Max-ideal)/2,
	}
}

func newAlert(severity AlertSeverity, category AlertCategory, message string, metadata map[string]any) *Alert {
	return &Alert{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Severity:  severity,
		Category:  category,
		Message:   message,
		Metadata:  metadata,
	}
}
