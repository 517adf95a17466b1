package models

import (
	lifted "github.com/benjamonnguyen/lifted-go"
)

// WorkoutProgress walks the sets of a plan, exercise by exercise.
type WorkoutProgress struct {
	plan     lifted.WorkoutPlan
	exercise int
	set      int // 1-based set to perform next
	done     bool
}

type CompletedSet struct {
	Exercise  int
	Name      string
	SetNumber int
	TotalSets int
}

// IsLastOfExercise is true when no rest is owed after this set.
func (c CompletedSet) IsLastOfExercise() bool {
	return c.SetNumber >= c.TotalSets
}

func NewWorkoutProgress(plan lifted.WorkoutPlan) WorkoutProgress {
	return WorkoutProgress{
		plan: plan,
		set:  1,
		done: len(plan.Exercises) == 0,
	}
}

// CompleteSet marks the current set done and moves on. ok is false once the
// whole plan has been completed.
func (p *WorkoutProgress) CompleteSet() (CompletedSet, bool) {
	if p.done {
		return CompletedSet{}, false
	}

	ex := p.plan.Exercises[p.exercise]
	completed := CompletedSet{
		Exercise:  p.exercise,
		Name:      ex.Name,
		SetNumber: p.set,
		TotalSets: ex.Sets,
	}

	if p.set < ex.Sets {
		p.set++
	} else if p.exercise+1 < len(p.plan.Exercises) {
		p.exercise++
		p.set = 1
	} else {
		p.done = true
	}
	return completed, true
}

func (p WorkoutProgress) Done() bool {
	return p.done
}

func (p WorkoutProgress) Exercise() int {
	return p.exercise
}

func (p WorkoutProgress) ExerciseName() string {
	if len(p.plan.Exercises) == 0 {
		return ""
	}
	return p.plan.Exercises[p.exercise].Name
}

// SetNumber is the 1-based set to perform next.
func (p WorkoutProgress) SetNumber() int {
	return p.set
}

func (p WorkoutProgress) TotalSets() int {
	if len(p.plan.Exercises) == 0 {
		return 0
	}
	return p.plan.Exercises[p.exercise].Sets
}

func (p WorkoutProgress) Plan() lifted.WorkoutPlan {
	return p.plan
}
