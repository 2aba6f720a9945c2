package controllers

import (
	"errors"
	"time"
	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/stats"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CheckInController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCheckInController(db *gorm.DB, cfg *config.Config) *CheckInController {
	return &CheckInController{DB: db, Cfg: cfg}
}

// RecordToday godoc
// @Summary Record today's check-in
// @Description Idempotent; at most one check-in per user per day
// @Tags checkins
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins/today [post]
func (cc *CheckInController) RecordToday(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	today := stats.DayOf(time.Now())

	var existing models.DailyCheckIn
	err = cc.DB.Where("user_id = ? AND check_in_date = ?", userID, today).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := cc.DB.Create(&models.DailyCheckIn{UserID: userID, CheckInDate: today}).Error; err != nil {
			return utils.InternalServerError(c, "Could not record check-in")
		}
	} else if err != nil {
		return utils.InternalServerError(c, "Could not query check-ins")
	}

	return c.JSON(fiber.Map{
		"message": "Check-in recorded",
		"date":    today.Format(stats.DateLayout),
	})
}

// MonthlyCalendar godoc
// @Summary Check-ins for a month
// @Tags checkins
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins/calendar/{year}/{month} [get]
func (cc *CheckInController) MonthlyCalendar(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	year, err := c.ParamsInt("year")
	if err != nil {
		return utils.BadRequest(c, "Invalid year")
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return utils.BadRequest(c, "Invalid month")
	}

	start, next := stats.MonthBounds(year, time.Month(month))

	var checkins []models.DailyCheckIn
	if err := cc.DB.
		Where("user_id = ? AND check_in_date >= ? AND check_in_date < ?", userID, start, next).
		Order("check_in_date ASC").
		Find(&checkins).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch check-ins")
	}

	dates := make([]string, 0, len(checkins))
	for _, checkin := range checkins {
		dates = append(dates, checkin.CheckInDate.Format(stats.DateLayout))
	}

	return c.JSON(fiber.Map{
		"year":     year,
		"month":    month,
		"checkins": dates,
	})
}

// Stats godoc
// @Summary Check-in statistics
// @Description Returns totals plus current and longest check-in streaks
// @Tags checkins
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins/stats [get]
func (cc *CheckInController) Stats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var dates []time.Time
	if err := cc.DB.Model(&models.DailyCheckIn{}).
		Where("user_id = ?", userID).
		Order("check_in_date ASC").
		Pluck("check_in_date", &dates).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch check-ins")
	}

	if len(dates) == 0 {
		return c.JSON(fiber.Map{
			"total_checkins":      0,
			"current_streak":      0,
			"longest_streak":      0,
			"this_month_checkins": 0,
		})
	}

	now := time.Now()
	current, longest := stats.CheckInStreaks(dates, now)

	start, next := stats.MonthBounds(now.Year(), now.Month())
	thisMonth := 0
	for _, d := range dates {
		day := stats.DayOf(d)
		if !day.Before(start) && day.Before(next) {
			thisMonth++
		}
	}

	return c.JSON(fiber.Map{
		"total_checkins":      len(dates),
		"current_streak":      current,
		"longest_streak":      longest,
		"this_month_checkins": thisMonth,
	})
}
