package services

import (
	"time"

	"github.com/terraincognita07/dosely/internal/models"
)

// HistoryDayGroup carries one day's dose logs plus the (taken, total) summary
// the client renders as a progress indicator.
type HistoryDayGroup struct {
	Date  string        `json:"date"`
	Taken int           `json:"taken"`
	Total int           `json:"total"`
	Items []HistoryItem `json:"items"`
}

type HistoryMonthGroup struct {
	Key  string            `json:"key"`
	Days []HistoryDayGroup `json:"days"`
}

// HistoryItem is a history row annotated with its on-time/late/skipped
// outcome.
type HistoryItem struct {
	models.HistoryRow
	Outcome string `json:"outcome"`
}

type HistoryLogReader interface {
	ListHistoryRows(userID uint) ([]models.HistoryRow, error)
	ListHistoryRowsInRange(userID uint, from time.Time, to time.Time) ([]models.HistoryRow, error)
}

type HistoryService struct {
	logs     HistoryLogReader
	location *time.Location
}

func NewHistoryService(logs HistoryLogReader, location *time.Location) *HistoryService {
	if location == nil {
		location = time.Local
	}
	return &HistoryService{logs: logs, location: location}
}

func (service *HistoryService) BuildHistory(userID uint) ([]HistoryMonthGroup, error) {
	rows, err := service.logs.ListHistoryRows(userID)
	if err != nil {
		return nil, err
	}
	return BuildHistoryMonths(rows, service.location), nil
}

// BuildHistoryMonths folds chronological rows (expected newest first) into
// month → day groups. This is a read-time fold over the log history, not a
// maintained structure.
func BuildHistoryMonths(rows []models.HistoryRow, location *time.Location) []HistoryMonthGroup {
	if location == nil {
		location = time.Local
	}

	months := make([]HistoryMonthGroup, 0)
	monthIndex := make(map[string]int)
	dayIndex := make(map[string]int)

	for _, row := range rows {
		localTime := row.TakenAt.In(location)
		monthKey := localTime.Format("2006-01")
		dayKey := localTime.Format("2006-01-02")

		monthPosition, monthSeen := monthIndex[monthKey]
		if !monthSeen {
			monthPosition = len(months)
			monthIndex[monthKey] = monthPosition
			months = append(months, HistoryMonthGroup{Key: monthKey})
		}

		dayPosition, daySeen := dayIndex[dayKey]
		if !daySeen {
			dayPosition = len(months[monthPosition].Days)
			dayIndex[dayKey] = dayPosition
			months[monthPosition].Days = append(months[monthPosition].Days, HistoryDayGroup{Date: dayKey})
		}

		day := &months[monthPosition].Days[dayPosition]
		day.Items = append(day.Items, HistoryItem{
			HistoryRow: row,
			Outcome:    ClassifyDose(row.Status, row.TimeToTake, localTime),
		})
		day.Total++
		if row.Status == models.DoseStatusTaken {
			day.Taken++
		}
	}

	return months
}
