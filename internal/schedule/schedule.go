// Package schedule enumerates the simulation instants: either explicit
// mmddhh dates or the fixed annual sampling schedule.
package schedule

import (
	"fmt"
	"strconv"

	"github.com/lumenlab/glaretrace/internal/model"
)

// weeksPerMonth is the number of sampled weeks for each of the first
// six months. One representative day per week, day = 7*week + 1.
var weeksPerMonth = [6]int{4, 4, 4, 4, 4, 3}

// winterSolstice is the fixed extra sampling day.
var winterSolstice = model.Instant{Month: 12, Day: 22}

// Annual returns the fixed annual sampling schedule: one day per week
// across the first six months plus the winter solstice day, every hour
// of each day.
func Annual() []model.Instant {
	var instants []model.Instant
	for m := 0; m < len(weeksPerMonth); m++ {
		for w := 0; w < weeksPerMonth[m]; w++ {
			instants = append(instants, dayHours(m+1, w*7+1)...)
		}
	}
	instants = append(instants, dayHours(winterSolstice.Month, winterSolstice.Day)...)
	return instants
}

func dayHours(month, day int) []model.Instant {
	instants := make([]model.Instant, 0, 24)
	for h := 0; h < 24; h++ {
		instants = append(instants, model.Instant{Month: month, Day: day, Hour: float64(h)})
	}
	return instants
}

// ParseDates converts mmddhh strings into instants. The hour part may
// carry a fraction (e.g. 031410.5).
func ParseDates(dates []string) ([]model.Instant, error) {
	instants := make([]model.Instant, 0, len(dates))
	for _, date := range dates {
		instant, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		instants = append(instants, instant)
	}
	return instants, nil
}

func parseDate(date string) (model.Instant, error) {
	if len(date) < 5 {
		return model.Instant{}, fmt.Errorf("date %q: want mmddhh", date)
	}
	month, err := strconv.Atoi(date[:2])
	if err != nil {
		return model.Instant{}, fmt.Errorf("date %q: bad month: %w", date, err)
	}
	day, err := strconv.Atoi(date[2:4])
	if err != nil {
		return model.Instant{}, fmt.Errorf("date %q: bad day: %w", date, err)
	}
	hour, err := strconv.ParseFloat(date[4:], 64)
	if err != nil {
		return model.Instant{}, fmt.Errorf("date %q: bad hour: %w", date, err)
	}
	if month < 1 || month > 12 {
		return model.Instant{}, fmt.Errorf("date %q: month out of range", date)
	}
	if day < 1 || day > 31 {
		return model.Instant{}, fmt.Errorf("date %q: day out of range", date)
	}
	if hour < 0 || hour >= 24 {
		return model.Instant{}, fmt.Errorf("date %q: hour out of range", date)
	}
	return model.Instant{Month: month, Day: day, Hour: hour}, nil
}
