package analytics

import (
	"testing"

	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/extraction"
)

func testGenerator() *AlertGenerator {
	return NewAlertGenerator(config.DefaultConfig().Brewing)
}

func record(temp, press float64, q extraction.Quality) extraction.Record {
	return extraction.Record{
		Parameters: extraction.Parameters{Temperature: temp, Pressure: press, TimeSeconds: 25},
		Outcome:    extraction.Outcome{Quality: q},
	}
}

func TestGenerateNoAlertsForIdealPull(t *testing.T) {
	g := testGenerator()
	r := record(93, 9, extraction.QualityPerfect)

	alerts := g.Generate(r, []extraction.Record{r})
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
}

func TestTemperatureDeviationAlert(t *testing.T) {
	g := testGenerator()
	// Within the validated range [85,100] but outside the tightened band [89,96.5].
	r := record(99, 9, extraction.QualityGood)

	alerts := g.Generate(r, []extraction.Record{r})

	found := false
	for _, a := range alerts {
		if a.Category == CategoryParameterDeviation && a.Severity == SeverityCritical {
			found = true
			if a.ID == "" {
				t.Error("alert missing uuid id")
			}
			if a.Metadata["temperature"] != 99.0 {
				t.Errorf("alert metadata = %v", a.Metadata)
			}
		}
	}
	if !found {
		t.Fatalf("expected critical temperature deviation alert, got %+v", alerts)
	}
}

func TestPressureInstabilityAlert(t *testing.T) {
	g := testGenerator()
	// Band around 9 bar with bounds [6,12] tightens to [7.5,10.5].
	r := record(93, 11, extraction.QualityGood)

	alerts := g.Generate(r, []extraction.Record{r})

	found := false
	for _, a := range alerts {
		if a.Category == CategoryParameterDeviation && a.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected pressure instability warning, got %+v", alerts)
	}
}

func TestLowSessionQualityAlert(t *testing.T) {
	g := testGenerator()

	session := []extraction.Record{
		record(93, 9, extraction.QualitySuboptimal),
		record(93, 9, extraction.QualitySuboptimal),
		record(93, 9, extraction.QualitySuboptimal),
		record(93, 9, extraction.QualityPerfect),
	}

	alerts := g.Generate(session[len(session)-1], session)

	found := false
	for _, a := range alerts {
		if a.Category == CategoryExtractionQuality {
			found = true
			if a.Severity != SeverityWarning {
				t.Errorf("severity = %s, want warning", a.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("expected low session quality alert, got %+v", alerts)
	}
}

func TestSessionRuleNeedsMinimumWindow(t *testing.T) {
	g := testGenerator()
	r := record(93, 9, extraction.QualitySuboptimal)

	alerts := g.Generate(r, []extraction.Record{r, r})
	for _, a := range alerts {
		if a.Category == CategoryExtractionQuality {
			t.Fatalf("session rule fired with only 2 records: %+v", a)
		}
	}
}

func TestAlertIDsAreUnique(t *testing.T) {
	g := testGenerator()
	r := record(99, 11, extraction.QualitySuboptimal)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		for _, a := range g.Generate(r, []extraction.Record{r}) {
			if seen[a.ID] {
				t.Fatalf("duplicate alert id %s", a.ID)
			}
			seen[a.ID] = true
		}
	}
}
