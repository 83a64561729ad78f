package analytics

import (
	"testing"

	"github.com/baristalabs/mastrena/internal/extraction"
)

func recordWithQuality(q extraction.Quality, temp float64) extraction.Record {
	return extraction.Record{
		Parameters: extraction.Parameters{Temperature: temp, Pressure: 9, TimeSeconds: 25},
		Outcome:    extraction.Outcome{Quality: q},
	}
}

func TestCalculateEmptyHistory(t *testing.T) {
	trends := Calculate(nil, PeriodDaily)

	if trends.PerfectRate != 0 {
		t.Errorf("perfect rate = %v, want 0", trends.PerfectRate)
	}
	if trends.AverageParameters != (AverageParameters{}) {
		t.Errorf("averages = %+v, want zeroes", trends.AverageParameters)
	}
	if trends.Direction != DirectionDeclining {
		t.Errorf("direction = %s", trends.Direction)
	}
	if trends.SampleSize != 0 {
		t.Errorf("sample size = %d", trends.SampleSize)
	}
}

func TestCalculateDistributionAndRate(t *testing.T) {
	records := []extraction.Record{
		recordWithQuality(extraction.QualityPerfect, 93),
		recordWithQuality(extraction.QualityPerfect, 94),
		recordWithQuality(extraction.QualityGood, 95),
		recordWithQuality(extraction.QualitySuboptimal, 99),
	}

	trends := Calculate(records, PeriodWeekly)

	if trends.Period != PeriodWeekly {
		t.Errorf("period = %s", trends.Period)
	}
	if trends.PerfectRate != 50 {
		t.Errorf("perfect rate = %v, want 50", trends.PerfectRate)
	}
	want := QualityDistribution{Perfect: 2, Good: 1, Suboptimal: 1}
	if trends.QualityDistribution != want {
		t.Errorf("distribution = %+v, want %+v", trends.QualityDistribution, want)
	}
	if trends.AverageParameters.Temperature != 95.25 {
		t.Errorf("avg temperature = %v, want 95.25", trends.AverageParameters.Temperature)
	}
}

func TestDirectionThresholds(t *testing.T) {
	perfect := func(n, total int) []extraction.Record {
		records := make([]extraction.Record, 0, total)
		for i := 0; i < n; i++ {
			records = append(records, recordWithQuality(extraction.QualityPerfect, 93))
		}
		for i := n; i < total; i++ {
			records = append(records, recordWithQuality(extraction.QualitySuboptimal, 99))
		}
		return records
	}

	if d := Calculate(perfect(8, 10), PeriodDaily).Direction; d != DirectionImproving {
		t.Errorf("80%% perfect: direction = %s, want improving", d)
	}
	if d := Calculate(perfect(6, 10), PeriodDaily).Direction; d != DirectionStable {
		t.Errorf("60%% perfect: direction = %s, want stable", d)
	}
	if d := Calculate(perfect(3, 10), PeriodDaily).Direction; d != DirectionDeclining {
		t.Errorf("30%% perfect: direction = %s, want declining", d)
	}
}
