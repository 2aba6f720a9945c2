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

type LogsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLogsController(db *gorm.DB, cfg *config.Config) *LogsController {
	return &LogsController{DB: db, Cfg: cfg}
}

// parseDate parses a day-granularity wire date.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(stats.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return stats.DayOf(d), nil
}

func logResponse(log models.HabitLog) fiber.Map {
	return fiber.Map{
		"id":         log.ID,
		"habit_id":   log.HabitID,
		"date":       log.Date.Format(stats.DateLayout),
		"completed":  log.Completed,
		"notes":      log.Notes,
		"created_at": log.CreatedAt,
	}
}

// GetHabitLogs godoc
// @Summary List habit logs
// @Description Returns logs for a habit, newest first, optionally filtered by date range
// @Tags logs
// @Produce json
// @Param id path int true "Habit ID"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id}/logs [get]
func (lc *LogsController) GetHabitLogs(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid habit id")
	}

	var habit models.Habit
	if err := lc.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	query := lc.DB.Where("habit_id = ?", habit.ID)
	if s := c.Query("start_date"); s != "" {
		start, err := parseDate(s)
		if err != nil {
			return utils.BadRequest(c, "Invalid start_date")
		}
		query = query.Where("date >= ?", start)
	}
	if s := c.Query("end_date"); s != "" {
		end, err := parseDate(s)
		if err != nil {
			return utils.BadRequest(c, "Invalid end_date")
		}
		query = query.Where("date <= ?", end)
	}

	var logs []models.HabitLog
	if err := query.Order("date DESC").Find(&logs).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch logs")
	}

	out := make([]fiber.Map, 0, len(logs))
	for _, log := range logs {
		out = append(out, logResponse(log))
	}

	return utils.Success(c, fiber.StatusOK, out)
}

// ToggleHabitLog godoc
// @Summary Toggle a completion
// @Description First toggle for a date creates a completed log; later toggles flip the flag
// @Tags logs
// @Accept json
// @Produce json
// @Param id path int true "Habit ID"
// @Param request body map[string]interface{} true "Date and optional notes"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id}/logs [post]
func (lc *LogsController) ToggleHabitLog(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid habit id")
	}

	var habit models.Habit
	if err := lc.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	var input struct {
		Date  string `json:"date"`
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	logDate, err := parseDate(input.Date)
	if err != nil {
		return utils.BadRequest(c, "Invalid date")
	}

	var log models.HabitLog
	err = lc.DB.Where("habit_id = ? AND date = ?", habit.ID, logDate).First(&log).Error
	switch {
	case err == nil:
		log.Completed = !log.Completed
		if input.Notes != "" {
			log.Notes = input.Notes
		}
		if err := lc.DB.Save(&log).Error; err != nil {
			return utils.InternalServerError(c, "Could not update log")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		log = models.HabitLog{
			HabitID:   habit.ID,
			Date:      logDate,
			Completed: true,
			Notes:     input.Notes,
		}
		if err := lc.DB.Create(&log).Error; err != nil {
			return utils.InternalServerError(c, "Could not create log")
		}
	default:
		return utils.InternalServerError(c, "Could not query logs")
	}

	return utils.Created(c, logResponse(log))
}

// DeleteHabitLog godoc
// @Summary Delete a log
// @Tags logs
// @Param logId path int true "Log ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/logs/{logId} [delete]
func (lc *LogsController) DeleteHabitLog(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	logID, err := c.ParamsInt("logId")
	if err != nil {
		return utils.BadRequest(c, "Invalid log id")
	}

	// Ownership check goes through the habit the log belongs to.
	var log models.HabitLog
	if err := lc.DB.Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habit_logs.id = ? AND habits.user_id = ?", logID, userID).
		First(&log).Error; err != nil {
		return utils.NotFound(c, "Log not found")
	}

	// Hard delete so a later toggle can recreate the same (habit, date).
	if err := lc.DB.Unscoped().Delete(&log).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete log")
	}

	return utils.NoContent(c)
}
