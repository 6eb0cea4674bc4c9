package utils

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestDetailBuilder_Row(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Row("Host", "examplebucket.s3.amazonaws.com")

	got := db.String()
	if !strings.Contains(got, "Host") {
		t.Error("Row should contain label")
	}
	if !strings.Contains(got, "examplebucket.s3.amazonaws.com") {
		t.Error("Row should contain value")
	}
}

func TestDetailBuilder_Section(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Section("Signature")

	got := db.String()
	if !strings.Contains(got, "── Signature") {
		t.Error("Section should contain heading")
	}
	if !strings.Contains(got, "───") {
		t.Error("Section should contain padding dashes")
	}
}

func TestDetailBuilder_Line(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Line("▲ something worth noting")

	got := db.String()
	if !strings.HasPrefix(got, "  ▲ something worth noting") {
		t.Errorf("Line output = %q, want indented text", got)
	}
}

func TestDetailBuilder_Blank(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Row("A", "1")
	db.Blank()
	db.Row("B", "2")

	got := db.String()
	if !strings.Contains(got, "\n\n") {
		t.Error("Blank should insert empty line")
	}
}

func TestDetailBuilder_Combined(t *testing.T) {
	style := lipgloss.NewStyle()
	db := NewDetailBuilder(16, style)
	db.Section("Request")
	db.Row("Service", "s3")
	db.Blank()
	db.Section("Validity")
	db.Row("Status", "valid")

	got := db.String()
	if !strings.Contains(got, "Request") {
		t.Error("should contain first section")
	}
	if !strings.Contains(got, "Validity") {
		t.Error("should contain second section")
	}
	if !strings.Contains(got, "s3") {
		t.Error("should contain first value")
	}
	if !strings.Contains(got, "valid") {
		t.Error("should contain second value")
	}
}
