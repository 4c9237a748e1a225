package services

import (
	"sort"
	"strings"

	"github.com/terraincognita07/dosely/internal/models"
)

const (
	GroupByTimeOfDay    = "time"
	GroupByDiseaseGroup = "disease"
)

// placeholderTimeLabel stands in for medications that have no schedule entry
// yet (the left join yields an empty clock time for those rows).
const placeholderTimeLabel = "00:00"

type MedicationGroup struct {
	Label string                 `json:"label"`
	Items []models.MedicationRow `json:"items"`
}

type MedicationRowLister interface {
	ListJoinedRows(userID uint, includeInactive bool) ([]models.MedicationRow, error)
}

type MedicationViewService struct {
	rows MedicationRowLister
}

func NewMedicationViewService(rows MedicationRowLister) *MedicationViewService {
	return &MedicationViewService{rows: rows}
}

// RowIdentityKey identifies the logical reminder a raw join row represents.
// Two physically distinct medication records with the same display name and
// the same intake time are the same reminder to the patient, so the key is
// (name, clock time) rather than a surrogate id: it survives duplicate-insert
// bugs at the data layer.
func RowIdentityKey(row models.MedicationRow) string {
	return strings.TrimSpace(row.Name) + "\x00" + strings.TrimSpace(row.TimeToTake)
}

// DeduplicateRows keeps the first occurrence of each identity key, preserving
// insertion order. Running it twice yields the same result as running it once.
func DeduplicateRows(rows []models.MedicationRow) []models.MedicationRow {
	seen := make(map[string]struct{}, len(rows))
	unique := make([]models.MedicationRow, 0, len(rows))
	for _, row := range rows {
		key := RowIdentityKey(row)
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, row)
	}
	return unique
}

// BuildView reads the raw join, deduplicates it, and groups it along the
// requested axis. The view is recomputed on every call; the per-patient row
// count is small and correctness under duplication matters more than
// throughput here.
func (service *MedicationViewService) BuildView(userID uint, groupBy string, includeInactive bool) ([]MedicationGroup, error) {
	rows, err := service.rows.ListJoinedRows(userID, includeInactive)
	if err != nil {
		return nil, err
	}

	unique := DeduplicateRows(rows)
	if groupBy == GroupByDiseaseGroup {
		return GroupRowsByDiseaseGroup(unique), nil
	}
	return GroupRowsByTimeOfDay(unique), nil
}

// GroupRowsByTimeOfDay buckets rows under their HH:MM label. Each bucket holds
// a single clock time, so members need no further sorting; the buckets
// themselves sort lexicographically by label.
func GroupRowsByTimeOfDay(rows []models.MedicationRow) []MedicationGroup {
	return groupRows(rows, timeOfDayLabel, func(group *MedicationGroup) {})
}

// GroupRowsByDiseaseGroup buckets rows under their disease group tag, with
// empty tags collapsing into the catch-all bucket. Members sort by clock time
// ascending; the buckets sort lexicographically by group name.
func GroupRowsByDiseaseGroup(rows []models.MedicationRow) []MedicationGroup {
	return groupRows(rows, diseaseGroupLabel, func(group *MedicationGroup) {
		sort.SliceStable(group.Items, func(i, j int) bool {
			return group.Items[i].TimeToTake < group.Items[j].TimeToTake
		})
	})
}

func groupRows(rows []models.MedicationRow, label func(models.MedicationRow) string, finalize func(*MedicationGroup)) []MedicationGroup {
	buckets := make(map[string][]models.MedicationRow)
	labels := make([]string, 0)
	for _, row := range rows {
		key := label(row)
		if _, exists := buckets[key]; !exists {
			labels = append(labels, key)
		}
		buckets[key] = append(buckets[key], row)
	}

	sort.Strings(labels)
	groups := make([]MedicationGroup, 0, len(labels))
	for _, key := range labels {
		group := MedicationGroup{Label: key, Items: buckets[key]}
		finalize(&group)
		groups = append(groups, group)
	}
	return groups
}

func timeOfDayLabel(row models.MedicationRow) string {
	trimmed := strings.TrimSpace(row.TimeToTake)
	if len(trimmed) < 5 {
		return placeholderTimeLabel
	}
	return trimmed[:5]
}

func diseaseGroupLabel(row models.MedicationRow) string {
	trimmed := strings.TrimSpace(row.DiseaseGroup)
	if trimmed == "" {
		return models.DefaultDiseaseGroup
	}
	return trimmed
}
