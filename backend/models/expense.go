package models

import (
	"time"

	"gorm.io/gorm"
)

type Expense struct {
	gorm.Model
	UserID uint      `gorm:"not null;index"`
	Date   time.Time `gorm:"not null;index"`
	Amount float64   `gorm:"not null"`
	Note   string
}

type MonthlyBudget struct {
	gorm.Model
	UserID uint    `gorm:"uniqueIndex:idx_user_budget_month;not null"`
	Month  int     `gorm:"uniqueIndex:idx_user_budget_month;not null"`
	Year   int     `gorm:"uniqueIndex:idx_user_budget_month;not null"`
	Amount float64 `gorm:"default:0"`
}

type DailyBudget struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_user_budget_date;not null"`
	Date   time.Time `gorm:"uniqueIndex:idx_user_budget_date;not null"`
	Amount float64   `gorm:"default:0"`
}
