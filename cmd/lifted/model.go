package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	lifted "github.com/benjamonnguyen/lifted-go"
	"github.com/benjamonnguyen/lifted-go/workout"
)

type workoutSession interface {
	Toggle() bool
	CompleteSet()
	SkipRest()
	Snapshot() workout.Snapshot
}

type (
	snapshotMsg     workout.Snapshot
	restCompleteMsg workout.CompletionEvent
)

type model struct {
	ctx       context.Context
	session   workoutSession
	lifecycle chan<- lifted.Lifecycle
	bell      func()

	planName string
	snap     workout.Snapshot
	alert    string
	width    int
}

func newModel(ctx context.Context, s workoutSession, planName string, lifecycle chan<- lifted.Lifecycle, bell func()) model {
	return model{
		ctx:       ctx,
		session:   s,
		lifecycle: lifecycle,
		bell:      bell,
		planName:  planName,
		snap:      s.Snapshot(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case snapshotMsg:
		m = m.apply(workout.Snapshot(msg))
	case restCompleteMsg:
		return m.handleRestComplete(workout.CompletionEvent(msg))
	case tea.FocusMsg:
		return m, m.sendLifecycle(lifted.Foreground)
	case tea.BlurMsg:
		return m, m.sendLifecycle(lifted.Background)
	case tea.ResumeMsg:
		return m, m.sendLifecycle(lifted.Foreground)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "ctrl+z":
		return m, tea.Sequence(m.sendLifecycle(lifted.Background), tea.Suspend)
	case " ":
		m.session.Toggle()
	case "enter":
		m.alert = ""
		m.session.CompleteSet()
	case "s":
		m.session.SkipRest()
	default:
		return m, nil
	}
	return m.apply(m.session.Snapshot()), nil
}

func (m model) handleRestComplete(ev workout.CompletionEvent) (tea.Model, tea.Cmd) {
	m = m.apply(m.session.Snapshot())
	switch ev.Reason {
	case workout.ReasonExpired:
		m.alert = lifted.RandomRestMessage()
		if ev.Notified {
			return m, nil
		}
	case workout.ReasonSkipped:
	default:
		return m, nil
	}

	if m.bell == nil {
		return m, nil
	}
	bell := m.bell
	return m, func() tea.Msg {
		bell()
		return nil
	}
}

// apply keeps the newest snapshot. Snapshots are delivered from several
// goroutines and may arrive out of order.
func (m model) apply(s workout.Snapshot) model {
	if s.Seq > m.snap.Seq {
		m.snap = s
	}
	return m
}

func (m model) sendLifecycle(l lifted.Lifecycle) tea.Cmd {
	ctx, ch := m.ctx, m.lifecycle
	return func() tea.Msg {
		select {
		case ch <- l:
		case <-ctx.Done():
		}
		return nil
	}
}
