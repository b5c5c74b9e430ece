package domain

import "testing"

func TestDeriveDayStatus(t *testing.T) {
	testCases := []struct {
		name     string
		statuses []string
		expected string
	}{
		{"no steps", nil, DayNotStarted},
		{"all completed", []string{StepCompleted, StepCompleted}, DayCompleted},
		{"one in progress", []string{StepCompleted, StepInProgress}, DayInProgress},
		{"paused counts as in progress", []string{StepPaused, StepNotStarted}, DayInProgress},
		{"none started", []string{StepNotStarted, StepNotStarted}, DayNotStarted},
		{"reset wins over not started", []string{StepReset, StepCompleted}, DayReset},
		{"active wins over reset", []string{StepReset, StepInProgress}, DayInProgress},
		{"completed and not started is not started", []string{StepCompleted, StepNotStarted}, DayNotStarted},
	}

	for _, tc := range testCases {
		result := DeriveDayStatus(tc.statuses)
		if result != tc.expected {
			t.Errorf("%s: DeriveDayStatus(%v) = %q, want %q", tc.name, tc.statuses, result, tc.expected)
		}
	}
}
