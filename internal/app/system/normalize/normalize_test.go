package normalize

import (
	"reflect"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ana@rent360.test", "ana@rent360.test"},
		{"ANA@RENT360.TEST", "ana@rent360.test"},
		{"  Ana@Rent360.Test  ", "ana@rent360.test"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ana Ruiz", "Ana Ruiz"},
		{"  Ana Ruiz  ", "Ana Ruiz"},
		{"", ""},
		{"NÚÑEZ", "NÚÑEZ"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoleAndStatus(t *testing.T) {
	if got := Role("  Owner "); got != "owner" {
		t.Errorf("Role = %q", got)
	}
	if got := Status("DISABLED"); got != "disabled" {
		t.Errorf("Status = %q", got)
	}
}

func TestSelection(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"rented", "rented"},
		{"  rented  ", "rented"},
		{"all", ""},
		{"ALL", ""},
		{"  All  ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Selection(tt.input); got != tt.want {
				t.Errorf("Selection(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSelections(t *testing.T) {
	got := Selections([]string{"urgent, high", " ", "low"})
	want := []string{"urgent", "high", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Selections = %v, want %v", got, want)
	}
	if got := Selections([]string{"urgent", "All"}); got != nil {
		t.Errorf("Selections with all = %v, want nil", got)
	}
	if got := Selections(nil); got != nil {
		t.Errorf("Selections(nil) = %v, want nil", got)
	}
}
