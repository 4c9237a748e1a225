package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

// dueScheduleRow is one schedule entry joined with its medication, scanned
// straight from the reminder query.
type dueScheduleRow struct {
	ScheduleEntryID uint   `gorm:"column:schedule_entry_id"`
	UserID          uint   `gorm:"column:user_id"`
	MedicationName  string `gorm:"column:medication_name"`
	DosageAmount    int    `gorm:"column:dosage_amount"`
	DosageUnit      string `gorm:"column:dosage_unit"`
	TimeToTake      string `gorm:"column:time_to_take"`
	DaysOfWeek      string `gorm:"column:days_of_week"`
}

// ReminderNotifier periodically pushes due-dose and low-stock reminders to a
// Telegram chat. It stays disabled unless both bot token and chat id are set.
type ReminderNotifier struct {
	db               *gorm.DB
	botToken         string
	chatID           string
	enabled          bool
	lookahead        time.Duration
	lowStockReminder bool
	location         *time.Location
	client           *http.Client
	mu               sync.Mutex
	sentReminders    map[string]time.Time
}

func NewReminderNotifier(db *gorm.DB, location *time.Location) *ReminderNotifier {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	enabled := botToken != "" && chatID != ""

	lookaheadMinutes := 30
	if raw := os.Getenv("REMINDER_LOOKAHEAD_MINUTES"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			lookaheadMinutes = parsed
		}
	}

	lowStockReminder := true
	if raw := os.Getenv("REMINDER_NOTIFY_LOW_STOCK"); raw != "" {
		lowStockReminder = raw == "1" || raw == "true" || raw == "TRUE"
	}

	if location == nil {
		location = time.Local
	}

	return &ReminderNotifier{
		db:               db,
		botToken:         botToken,
		chatID:           chatID,
		enabled:          enabled,
		lookahead:        time.Duration(lookaheadMinutes) * time.Minute,
		lowStockReminder: lowStockReminder,
		location:         location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentReminders: make(map[string]time.Time),
	}
}

func (notifier *ReminderNotifier) Start(ctx context.Context) {
	if !notifier.enabled {
		return
	}

	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		defer ticker.Stop()

		notifier.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notifier.run(ctx)
			}
		}
	}()
}

func (notifier *ReminderNotifier) run(ctx context.Context) {
	now := time.Now().In(notifier.location)
	notifier.remindDueDoses(ctx, now)
	if notifier.lowStockReminder {
		notifier.remindLowStock(ctx, now)
	}
}

func (notifier *ReminderNotifier) remindDueDoses(ctx context.Context, now time.Time) {
	rows := make([]dueScheduleRow, 0)
	err := notifier.db.WithContext(ctx).Raw(`
SELECT sch.id AS schedule_entry_id, m.user_id, m.name AS medication_name,
       sch.dosage_amount, m.dosage_unit, sch.time_to_take, sch.days_of_week
FROM schedule_entries sch
JOIN medications m ON m.id = sch.medication_id
WHERE m.active = 1`).Scan(&rows).Error
	if err != nil {
		log.Printf("reminders: fetch schedule failed: %v", err)
		return
	}

	for _, row := range rows {
		if !scheduledForDay(row.DaysOfWeek, now.Weekday()) {
			continue
		}
		scheduledMinutes, err := ParseTimeOfDay(row.TimeToTake)
		if err != nil || !IsDueWithin(scheduledMinutes, now, notifier.lookahead) {
			continue
		}
		key := fmt.Sprintf("dose:%d:%s", row.ScheduleEntryID, now.Format("2006-01-02"))
		if !notifier.shouldSend(key, now) {
			continue
		}
		message := fmt.Sprintf("Dosely reminder: take %d %s of %s at %s.",
			row.DosageAmount, row.DosageUnit, row.MedicationName, FormatTimeOfDay(scheduledMinutes)[:5])
		if err := notifier.sendTelegram(ctx, message); err != nil {
			log.Printf("reminders: send dose reminder failed: %v", err)
		}
	}
}

func (notifier *ReminderNotifier) remindLowStock(ctx context.Context, now time.Time) {
	entries := make([]models.LowStockEntry, 0)
	err := notifier.db.WithContext(ctx).Raw(`
SELECT s.medication_id, m.name AS medication_name, s.quantity, s.notify_threshold
FROM stocks s
JOIN medications m ON m.id = s.medication_id
WHERE m.active = 1 AND s.quantity <= s.notify_threshold`).Scan(&entries).Error
	if err != nil {
		log.Printf("reminders: fetch low stock failed: %v", err)
		return
	}

	for _, entry := range entries {
		key := fmt.Sprintf("stock:%d:%s", entry.MedicationID, now.Format("2006-01-02"))
		if !notifier.shouldSend(key, now) {
			continue
		}
		message := fmt.Sprintf("Dosely reminder: %s is running low (%d left, threshold %d).",
			entry.MedicationName, entry.Quantity, entry.NotifyThreshold)
		if err := notifier.sendTelegram(ctx, message); err != nil {
			log.Printf("reminders: send low stock reminder failed: %v", err)
		}
	}
}

// IsDueWithin reports whether a scheduled minute-of-day falls inside
// [now, now+window) on the current day.
func IsDueWithin(scheduledMinutes int, now time.Time, window time.Duration) bool {
	nowMinutes := now.Hour()*60 + now.Minute()
	windowMinutes := int(window / time.Minute)
	return scheduledMinutes >= nowMinutes && scheduledMinutes < nowMinutes+windowMinutes
}

// scheduledForDay checks a days_of_week mask such as "everyday" or
// "mon,wed,fri" against the given weekday.
func scheduledForDay(daysOfWeek string, weekday time.Weekday) bool {
	mask := strings.ToLower(strings.TrimSpace(daysOfWeek))
	if mask == "" || mask == models.EveryDay {
		return true
	}
	short := strings.ToLower(weekday.String()[:3])
	for _, day := range strings.Split(mask, ",") {
		if strings.TrimSpace(day) == short {
			return true
		}
	}
	return false
}

func (notifier *ReminderNotifier) shouldSend(key string, now time.Time) bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	if sentAt, ok := notifier.sentReminders[key]; ok && sentAt.YearDay() == now.YearDay() && sentAt.Year() == now.Year() {
		return false
	}

	notifier.sentReminders[key] = now
	if len(notifier.sentReminders) > 500 {
		notifier.sentReminders = make(map[string]time.Time)
	}
	return true
}

func (notifier *ReminderNotifier) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
