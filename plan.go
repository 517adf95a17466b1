package lifted

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrEmptyPlan = errors.New("workout plan has no exercises")

// WorkoutPlan is the workout a session executes, typically read from a TOML
// file:
//
//	name = "Push day"
//	default_rest_seconds = 90
//
//	[[exercise]]
//	name = "Bench press"
//	sets = 4
//	rest_seconds = 120
type WorkoutPlan struct {
	Name               string         `toml:"name"`
	DefaultRestSeconds int            `toml:"default_rest_seconds"`
	Exercises          []ExercisePlan `toml:"exercise"`
}

type ExercisePlan struct {
	Name string `toml:"name"`
	Sets int    `toml:"sets"`
	// RestSeconds overrides the plan default when set. Zero means no rest.
	RestSeconds *int `toml:"rest_seconds"`
}

func LoadWorkoutPlan(path string) (WorkoutPlan, error) {
	var plan WorkoutPlan
	if _, err := toml.DecodeFile(path, &plan); err != nil {
		return WorkoutPlan{}, fmt.Errorf("failed to decode workout plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return WorkoutPlan{}, fmt.Errorf("invalid workout plan %s: %w", path, err)
	}
	return plan, nil
}

// QuickPlan is used when no plan file is configured: a single open-ended
// exercise with the given rest between sets.
func QuickPlan(rest time.Duration, sets int) WorkoutPlan {
	return WorkoutPlan{
		Name:               "Quick workout",
		DefaultRestSeconds: int(rest / time.Second),
		Exercises: []ExercisePlan{
			{Name: "Sets", Sets: sets},
		},
	}
}

func (p WorkoutPlan) Validate() error {
	if len(p.Exercises) == 0 {
		return ErrEmptyPlan
	}
	if p.DefaultRestSeconds < 0 {
		return fmt.Errorf("default_rest_seconds must not be negative")
	}
	for i, e := range p.Exercises {
		if e.Sets < 1 {
			return fmt.Errorf("exercise %d (%q) needs at least one set", i, e.Name)
		}
		if e.RestSeconds != nil && *e.RestSeconds < 0 {
			return fmt.Errorf("exercise %d (%q) rest_seconds must not be negative", i, e.Name)
		}
	}
	return nil
}

// RestFor returns the rest between sets of exercise i.
func (p WorkoutPlan) RestFor(i int) time.Duration {
	if i < 0 || i >= len(p.Exercises) {
		return 0
	}
	secs := p.DefaultRestSeconds
	if r := p.Exercises[i].RestSeconds; r != nil {
		secs = *r
	}
	return time.Duration(secs) * time.Second
}
