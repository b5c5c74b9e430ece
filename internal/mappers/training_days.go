// Package mappers projects stored offline metadata plus locally tracked
// step state into the response shapes the live training API returns, so
// the rest of the app never branches on online/offline mode. Pure
// functions, no I/O.
package mappers

import (
	"math"

	"course-offline/internal/domain"
)

// StepTypeTraining is assumed for offline steps with no stored type;
// older schemas did not carry theory/practice/exam typing.
const StepTypeTraining = "TRAINING"

const stepTypeTheory = "THEORY"

// DaysListView mirrors the live days-list response.
type DaysListView struct {
	CourseID   int64         `json:"courseId"`
	CourseType string        `json:"courseType"`
	Name       string        `json:"name"`
	Equipment  string        `json:"equipment,omitempty"`
	Level      string        `json:"level,omitempty"`
	Days       []DayListItem `json:"days"`
}

// DayListItem is one day in the list view. DurationMin of zero is encoded
// as absent ("unknown"), never as "zero minutes".
type DayListItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	DayNumber   int    `json:"dayNumber"`
	DurationMin int    `json:"durationMin,omitempty"`
	TheoryMin   int    `json:"theoryMin,omitempty"`
	Status      string `json:"status"`
}

// DayView mirrors the live single-day response.
type DayView struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	DayNumber      int        `json:"dayNumber"`
	EquipmentItems []string   `json:"equipmentItems,omitempty"`
	Steps          []StepView `json:"steps"`
}

// StepView merges the stored step definition with its locally tracked
// runtime state.
type StepView struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Type         string   `json:"type"`
	DurationSec  int      `json:"durationSec"`
	VideoURL     string   `json:"videoUrl,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	PdfURL       string   `json:"pdfUrl,omitempty"`
	Checklist    []string `json:"checklist,omitempty"`
	Status       string   `json:"status"`
	RemainingSec int      `json:"remainingSec"`
}

// ToTrainingDaysResponse builds the days-list view from stored metadata.
// Day statuses are derived from step state on every call, never persisted.
func ToTrainingDaysResponse(meta domain.OfflineCourseMeta, states domain.StepStateAccessor) DaysListView {
	view := DaysListView{
		CourseID:   meta.Course.ID,
		CourseType: meta.Course.CourseType,
		Name:       meta.Course.Name,
		Equipment:  meta.Course.Equipment,
		Level:      meta.Course.Level,
		Days:       make([]DayListItem, 0, len(meta.TrainingDays)),
	}

	for _, day := range meta.TrainingDays {
		totalSec := 0
		theorySec := 0
		statuses := make([]string, 0, len(day.Steps))
		for i, step := range day.Steps {
			totalSec += step.DurationSec
			if step.Type == stepTypeTheory {
				theorySec += step.DurationSec
			}
			statuses = append(statuses, stepStatus(meta.Course.ID, day.ID, i, states))
		}

		view.Days = append(view.Days, DayListItem{
			ID:          day.ID,
			Title:       day.Title,
			DayNumber:   day.DayNumber,
			DurationMin: secondsToMinutes(totalSec),
			TheoryMin:   secondsToMinutes(theorySec),
			Status:      domain.DeriveDayStatus(statuses),
		})
	}
	return view
}

// ToTrainingDayResponse builds the single-day view for dayID. The second
// return is false when the day is not in the stored set.
func ToTrainingDayResponse(meta domain.OfflineCourseMeta, dayID int64, states domain.StepStateAccessor) (DayView, bool) {
	for _, day := range meta.TrainingDays {
		if day.ID != dayID {
			continue
		}

		view := DayView{
			ID:             day.ID,
			Title:          day.Title,
			DayNumber:      day.DayNumber,
			EquipmentItems: day.EquipmentItems,
			Steps:          make([]StepView, 0, len(day.Steps)),
		}
		for i, step := range day.Steps {
			stepType := step.Type
			if stepType == "" {
				stepType = StepTypeTraining
			}
			state, ok := states.StepState(meta.Course.ID, day.ID, i)
			if !ok {
				state = domain.StepState{Status: domain.StepNotStarted, RemainingSec: step.DurationSec}
			}
			view.Steps = append(view.Steps, StepView{
				ID:           step.ID,
				Title:        step.Title,
				Description:  step.Description,
				Type:         stepType,
				DurationSec:  step.DurationSec,
				VideoURL:     step.VideoURL,
				ImageURL:     step.ImageURL,
				PdfURL:       step.PdfURL,
				Checklist:    step.Checklist,
				Status:       state.Status,
				RemainingSec: state.RemainingSec,
			})
		}
		return view, true
	}
	return DayView{}, false
}

func stepStatus(courseID, dayID int64, stepIndex int, states domain.StepStateAccessor) string {
	state, ok := states.StepState(courseID, dayID, stepIndex)
	if !ok || state.Status == "" {
		return domain.StepNotStarted
	}
	return state.Status
}

func secondsToMinutes(sec int) int {
	if sec <= 0 {
		return 0
	}
	return int(math.Round(float64(sec) / 60.0))
}
