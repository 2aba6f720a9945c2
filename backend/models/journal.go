package models

import (
	"time"

	"gorm.io/gorm"
)

type JournalEntry struct {
	gorm.Model
	UserID        uint      `gorm:"uniqueIndex:idx_user_entry_type_date;not null"`
	EntryType     string    `gorm:"uniqueIndex:idx_user_entry_type_date;not null"` // daily, weekly, monthly
	Date          time.Time `gorm:"uniqueIndex:idx_user_entry_type_date;not null"`
	Content       string
	GoalText      string // single goal for monthly entries
	DailyProgress string // JSON object of day-number -> checked
	Rating        *int   // 1-5, last day of month only
	Feedback      string // end of month feedback
}
