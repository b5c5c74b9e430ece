package domain

// Step statuses as tracked by the app's local step/timer store.
const (
	StepNotStarted = "NOT_STARTED"
	StepInProgress = "IN_PROGRESS"
	StepPaused     = "PAUSED"
	StepCompleted  = "COMPLETED"
	StepReset      = "RESET"
)

// Day statuses derived from step statuses. Never persisted, recomputed on
// every read.
const (
	DayNotStarted = "NOT_STARTED"
	DayInProgress = "IN_PROGRESS"
	DayCompleted  = "COMPLETED"
	DayReset      = "RESET"
)

// StepState is the locally tracked runtime state of one step.
type StepState struct {
	Status       string
	RemainingSec int
}

// StepStateAccessor reads per-step runtime state from the app's local store.
// The second return is false when no state was ever recorded for the step.
type StepStateAccessor interface {
	StepState(courseID int64, dayID int64, stepIndex int) (StepState, bool)
}

// DeriveDayStatus computes a day's status from its step statuses:
// COMPLETED iff every step completed; else IN_PROGRESS if any step is
// in progress or paused; else RESET if any step was explicitly reset;
// else NOT_STARTED.
func DeriveDayStatus(statuses []string) string {
	if len(statuses) == 0 {
		return DayNotStarted
	}

	completed := 0
	anyActive := false
	anyReset := false
	for _, s := range statuses {
		switch s {
		case StepCompleted:
			completed++
		case StepInProgress, StepPaused:
			anyActive = true
		case StepReset:
			anyReset = true
		}
	}

	switch {
	case completed == len(statuses):
		return DayCompleted
	case anyActive:
		return DayInProgress
	case anyReset:
		return DayReset
	default:
		return DayNotStarted
	}
}
