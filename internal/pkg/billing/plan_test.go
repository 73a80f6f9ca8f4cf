package billing

import "testing"

func TestPlanMonths(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "4_MONTHS", want: 4},
		{in: "8_MONTHS", want: 8},
		{in: "12_MONTHS", want: 12},
		{in: " 8_months ", want: 8},
	}

	for _, tt := range tests {
		got, err := PlanMonths(tt.in)
		if err != nil {
			t.Fatalf("PlanMonths(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("PlanMonths(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPlanMonthsRejectsUnknownPlans(t *testing.T) {
	for _, in := range []string{"", "6_MONTHS", "LIFETIME", "12"} {
		if _, err := PlanMonths(in); err == nil {
			t.Fatalf("expected error for plan %q", in)
		}
	}
}
