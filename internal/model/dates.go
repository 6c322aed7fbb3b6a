package model

import (
	"fmt"
	"time"
)

// Due status enum constants
const (
	DueOverdue = "OVERDUE"
	DueSoon    = "DUE_SOON"
	DueOnTime  = "ON_TIME"
)

// Priority to due-date offset, in days from creation.
var dueOffsetDays = map[string]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityMedium: 5,
	PriorityLow:    10,
}

// DueDateForPriority derives the due date from the priority. Unknown
// priorities fall back to the LOW offset.
func DueDateForPriority(priority string, now time.Time) time.Time {
	offset, ok := dueOffsetDays[priority]
	if !ok {
		offset = dueOffsetDays[PriorityLow]
	}
	return startOfDay(now).AddDate(0, 0, offset)
}

// DueStatusFor classifies the urgency of a due date relative to now.
// OVERDUE when the due date has passed, DUE_SOON when it is today or
// tomorrow, ON_TIME otherwise.
func DueStatusFor(now, due time.Time) string {
	if due.IsZero() {
		return DueOnTime
	}
	diff := wholeDaysBetween(now, due)
	if diff < 0 {
		return DueOverdue
	}
	if diff < 2 {
		return DueSoon
	}
	return DueOnTime
}

// DaysLeftFor renders the remaining time as a human string. The count is
// inclusive of the current day, so a request due today reads "1 days".
func DaysLeftFor(now, due time.Time) string {
	if due.IsZero() {
		return "N/A"
	}
	diff := wholeDaysBetween(now, due)
	if diff < 0 {
		return fmt.Sprintf("Overdue %d days", -diff)
	}
	return fmt.Sprintf("%d days", diff+1)
}

// wholeDaysBetween counts calendar days from a to b, negative when b is
// before a. Both sides are truncated to midnight so partial days never count.
func wholeDaysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
