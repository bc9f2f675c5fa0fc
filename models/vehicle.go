package models

import "fmt"

// VehicleRecord is a single catalog entry. The catalog is loaded once at
// startup and never mutated afterwards.
type VehicleRecord struct {
	Make             string  `yaml:"make" json:"make"`
	Model            string  `yaml:"model" json:"model"`
	Year             int     `yaml:"year" json:"year"`
	Type             string  `yaml:"type" json:"type"`
	ServiceTimeHours float64 `yaml:"service_time_hours" json:"serviceTimeHours"`
}

// Description returns the human-readable "YEAR MAKE MODEL" form.
func (v VehicleRecord) Description() string {
	if v.Year > 0 {
		return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
	}
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}
