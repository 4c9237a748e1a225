package services

import (
	"math"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
)

// OnTimeGraceMinutes is how long after the scheduled clock time a taken dose
// still counts as on-time. Fixed policy, not user-configurable.
const OnTimeGraceMinutes = 30

const (
	DoseOutcomeOnTime  = "on_time"
	DoseOutcomeLate    = "late"
	DoseOutcomeSkipped = "skipped"
)

// ClassifyDose labels a single logged dose. A skipped status wins outright;
// otherwise the log timestamp is compared against the scheduled clock time on
// the same calendar day.
func ClassifyDose(status string, scheduledTime string, takenAt time.Time) string {
	if status == models.DoseStatusSkipped {
		return DoseOutcomeSkipped
	}

	scheduledMinutes, err := ParseTimeOfDay(scheduledTime)
	if err != nil {
		return DoseOutcomeOnTime
	}

	loggedMinutes := takenAt.Hour()*60 + takenAt.Minute()
	if loggedMinutes-scheduledMinutes > OnTimeGraceMinutes {
		return DoseOutcomeLate
	}
	return DoseOutcomeOnTime
}

// AdherencePercentage is round(100·taken/total). A zero total is treated as a
// denominator of one, yielding 0 instead of an error or NaN; this saturating
// default keeps empty periods rendering as 0%.
func AdherencePercentage(takenCount int, totalCount int) int {
	if totalCount <= 0 {
		totalCount = 1
	}
	return int(math.Round(100 * float64(takenCount) / float64(totalCount)))
}

type AdherenceLogReader interface {
	ListHistoryRowsInRange(userID uint, from time.Time, to time.Time) ([]models.HistoryRow, error)
}

type AdherenceService struct {
	logs AdherenceLogReader
}

func NewAdherenceService(logs AdherenceLogReader) *AdherenceService {
	return &AdherenceService{logs: logs}
}

// ComputeAdherence folds the patient's dose logs inside [from, to) into a
// 0–100 percentage.
func (service *AdherenceService) ComputeAdherence(userID uint, from time.Time, to time.Time) (int, error) {
	rows, err := service.logs.ListHistoryRowsInRange(userID, from, to)
	if err != nil {
		return 0, err
	}

	takenCount := 0
	for _, row := range rows {
		if row.Status == models.DoseStatusTaken {
			takenCount++
		}
	}
	return AdherencePercentage(takenCount, len(rows)), nil
}

// MonthRange returns the [start, end) bounds of a calendar month in the given
// location.
func MonthRange(year int, month time.Month, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, location)
	return start, start.AddDate(0, 1, 0)
}
