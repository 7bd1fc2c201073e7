package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "2023/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"09:30", "00:00", "23:59"}
	invalid := []string{"24:00", "9:3", "09:61", "morning", ""}
	for _, s := range valid {
		if _, ok := IsValidTimeOfDay(s); !ok {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidTimeOfDay(s); ok {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP-0001", "FAC-1234", "AD-0042"}
	invalid := []string{"emp-0001", "EMP0001", "EMPLOYEE-0001", "EMP-1", ""}
	for _, s := range valid {
		if !IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", s)
		}
	}
}
