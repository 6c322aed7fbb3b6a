package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestDueDateForPriority(t *testing.T) {
	midnight := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		priority string
		want     time.Time
	}{
		{PriorityUrgent, midnight.AddDate(0, 0, 1)},
		{PriorityHigh, midnight.AddDate(0, 0, 2)},
		{PriorityMedium, midnight.AddDate(0, 0, 5)},
		{PriorityLow, midnight.AddDate(0, 0, 10)},
		{"UNKNOWN", midnight.AddDate(0, 0, 10)},
		{"", midnight.AddDate(0, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			assert.Equal(t, tt.want, DueDateForPriority(tt.priority, testNow))
		})
	}
}

func TestDueStatusFor(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"yesterday is overdue", testNow.AddDate(0, 0, -1), DueOverdue},
		{"way past is overdue", testNow.AddDate(0, 0, -14), DueOverdue},
		{"today is due soon", testNow, DueSoon},
		{"tomorrow is due soon", testNow.AddDate(0, 0, 1), DueSoon},
		{"day after tomorrow is on time", testNow.AddDate(0, 0, 2), DueOnTime},
		{"next week is on time", testNow.AddDate(0, 0, 7), DueOnTime},
		{"zero date is on time", time.Time{}, DueOnTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueStatusFor(testNow, tt.due))
		})
	}
}

func TestDueStatusForIgnoresTimeOfDay(t *testing.T) {
	// Due early tomorrow morning while "now" is late evening: still a full
	// calendar day apart.
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	due := time.Date(2026, time.March, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, DueSoon, DueStatusFor(now, due))
}

func TestDaysLeftFor(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"overdue three days", testNow.AddDate(0, 0, -3), "Overdue 3 days"},
		{"overdue one day", testNow.AddDate(0, 0, -1), "Overdue 1 days"},
		{"due today counts itself", testNow, "1 days"},
		{"due in four days", testNow.AddDate(0, 0, 4), "5 days"},
		{"zero date", time.Time{}, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLeftFor(testNow, tt.due))
		})
	}
}
