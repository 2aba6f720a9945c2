package controllers

import (
	"time"
	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/stats"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Get overall progress
// @Description Returns nested daily, weekly and monthly completion reports for the user's active habits
// @Tags progress
// @Produce json
// @Success 200 {object} stats.OverallProgress
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	today := time.Now()

	var totalHabits int64
	if err := pc.DB.Model(&models.Habit{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&totalHabits).Error; err != nil {
		return utils.InternalServerError(c, "Failed to count habits")
	}

	// One fetch covers the whole reporting window; the week containing
	// today may extend past the month on either side.
	start, end := stats.FetchRange(today)

	var logs []models.HabitLog
	if err := pc.DB.
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habits.is_active = ?", userID, true).
		Where("habit_logs.completed = ?", true).
		Where("habit_logs.date >= ? AND habit_logs.date < ?", start, end).
		Find(&logs).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch completions")
	}

	idx := stats.NewCompletionIndex()
	for _, log := range logs {
		idx.Add(log.HabitID, log.Date)
	}

	return c.JSON(stats.Overall(idx, int(totalHabits), today))
}
