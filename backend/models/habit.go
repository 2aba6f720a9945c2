package models

import (
	"time"

	"gorm.io/gorm"
)

type Habit struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	Color       string     `gorm:"default:'#6366f1'"`
	Icon        string     `gorm:"default:'⭐'"`
	TargetDays  int        `gorm:"default:7"`
	IsActive    bool       `gorm:"default:true"`
	Logs        []HabitLog `gorm:"constraint:OnDelete:CASCADE"`
}

// HabitLog is a per-day toggle record: at most one row per (habit, date).
type HabitLog struct {
	gorm.Model
	HabitID   uint      `gorm:"uniqueIndex:idx_habit_log_date;not null"`
	Date      time.Time `gorm:"uniqueIndex:idx_habit_log_date;not null"`
	Completed bool      `gorm:"default:true"`
	Notes     string
}
