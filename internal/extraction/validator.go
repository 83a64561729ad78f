package extraction

import (
	"strconv"

	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/errors"
)

// Validator merges absent inputs with configured defaults and checks each
// value against its accepted physical range. It has no side effects.
type Validator struct {
	brewing config.BrewingConfig
}

// NewValidator creates a validator using the given brewing bounds and defaults.
func NewValidator(brewing config.BrewingConfig) *Validator {
	return &Validator{brewing: brewing}
}

// Validate parses and range-checks raw inputs. Absent values take the
// configured defaults before range checking, so a misconfigured default can
// never slip through.
func (v *Validator) Validate(raw RawParameters) (Parameters, error) {
	temperature, err := v.field("temperature", raw.Temperature, v.brewing.Defaults.Temperature, v.brewing.Temperature)
	if err != nil {
		return Parameters{}, err
	}
	pressure, err := v.field("pressure", raw.Pressure, v.brewing.Defaults.Pressure, v.brewing.Pressure)
	if err != nil {
		return Parameters{}, err
	}
	seconds, err := v.field("time_seconds", raw.TimeSeconds, v.brewing.Defaults.TimeSeconds, v.brewing.TimeSeconds)
	if err != nil {
		return Parameters{}, err
	}

	return Parameters{
		Temperature: temperature,
		Pressure:    pressure,
		TimeSeconds: seconds,
	}, nil
}

func (v *Validator) field(name, raw string, def float64, bounds config.Range) (float64, error) {
	value := def
	if raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Malformed(name, raw)
		}
		value = parsed
	}
	if !bounds.Contains(value) {
		return 0, errors.OutOfRange(name, value, bounds.Min, bounds.Max)
	}
	return value, nil
}
