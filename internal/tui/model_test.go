package tui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"tasnim.dev/presign/internal/presign"
)

func watchEval(checkedAt time.Time) presign.Evaluation {
	signedAt := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	return presign.Evaluation{
		SignedAt:  signedAt,
		ExpiresAt: signedAt.Add(time.Hour),
		CheckedAt: checkedAt,
		ExpiresIn: 3600,
	}
}

func TestView_Valid(t *testing.T) {
	checked := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	m := NewModel("examplebucket.s3.amazonaws.com/file.txt", watchEval(checked), func() time.Time { return checked })

	view := m.View().Content
	if !strings.Contains(view, "examplebucket.s3.amazonaws.com/file.txt") {
		t.Error("view should show the endpoint")
	}
	if !strings.Contains(view, "2026-08-23 10:00:00 UTC") {
		t.Error("view should show the signing time")
	}
	if !strings.Contains(view, "2026-08-23 11:00:00 UTC") {
		t.Error("view should show the expiry time")
	}
	if !strings.Contains(view, "valid") {
		t.Error("view should show the valid status")
	}
	if !strings.Contains(view, "0:30:00 left") {
		t.Error("view should show the remaining countdown")
	}
	if !strings.Contains(view, "q quit") {
		t.Error("view should show the quit hint")
	}
}

func TestView_Expired(t *testing.T) {
	checked := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	m := NewModel("examplebucket.s3.amazonaws.com/file.txt", watchEval(checked), func() time.Time { return checked })

	view := m.View().Content
	if !strings.Contains(view, "expired") {
		t.Error("view should show the expired status")
	}
	if !strings.Contains(view, "1:00:00 ago") {
		t.Error("view should show how long ago the URL expired")
	}
}

func TestView_ExpiringSoon(t *testing.T) {
	checked := time.Date(2026, 8, 23, 10, 59, 30, 0, time.UTC)
	m := NewModel("host/key", watchEval(checked), func() time.Time { return checked })

	view := m.View().Content
	if !strings.Contains(view, "expiring") {
		t.Error("view should show the expiring status inside the final minute")
	}
	if !strings.Contains(view, "0:00:30 left") {
		t.Error("view should keep the countdown in the expiring state")
	}
}

func TestUpdate_TickResamplesClock(t *testing.T) {
	start := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	later := start.Add(5 * time.Second)
	m := NewModel("host/key", watchEval(start), func() time.Time { return later })

	updated, cmd := m.Update(tickMsg{})
	model := updated.(Model)

	if !model.eval.CheckedAt.Equal(later) {
		t.Errorf("CheckedAt = %v, want %v", model.eval.CheckedAt, later)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	checked := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	m := NewModel("host/key", watchEval(checked), func() time.Time { return checked })

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	checked := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	m := NewModel("host/key", watchEval(checked), func() time.Time { return checked })

	// Simulate a window resize
	msg := tea.WindowSizeMsg{Width: 120, Height: 40}
	updated, _ := m.Update(msg)
	model := updated.(Model)

	if model.width != 120 {
		t.Errorf("width = %d, want 120", model.width)
	}
	if model.height != 40 {
		t.Errorf("height = %d, want 40", model.height)
	}
}

func TestFraction(t *testing.T) {
	signedAt := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		checkedAt time.Time
		expiresIn time.Duration
		want      float64
	}{
		{name: "half window left", checkedAt: signedAt.Add(30 * time.Minute), expiresIn: time.Hour, want: 0.5},
		{name: "fresh", checkedAt: signedAt, expiresIn: time.Hour, want: 1.0},
		{name: "past expiry clamps to zero", checkedAt: signedAt.Add(2 * time.Hour), expiresIn: time.Hour, want: 0.0},
		{name: "negative window", checkedAt: signedAt, expiresIn: -time.Minute, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := presign.Evaluation{
				SignedAt:  signedAt,
				ExpiresAt: signedAt.Add(tt.expiresIn),
				CheckedAt: tt.checkedAt,
			}
			m := NewModel("host/key", eval, func() time.Time { return tt.checkedAt })
			if got := m.fraction(); got != tt.want {
				t.Errorf("fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}
