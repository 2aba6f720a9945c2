package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

type DailyCheckIn struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex:idx_user_checkin_date;not null"`
	CheckInDate time.Time `gorm:"uniqueIndex:idx_user_checkin_date;not null"`
}
