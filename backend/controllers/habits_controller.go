package controllers

import (
	"strconv"
	"time"
	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/stats"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HabitsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHabitsController(db *gorm.DB, cfg *config.Config) *HabitsController {
	return &HabitsController{DB: db, Cfg: cfg}
}

// completedDates loads every completed-day date for a habit in one
// query; streaks, window rate and totals are all derived from it.
func (hc *HabitsController) completedDates(habitID uint) ([]time.Time, error) {
	var dates []time.Time
	err := hc.DB.Model(&models.HabitLog{}).
		Where("habit_id = ? AND completed = ?", habitID, true).
		Pluck("date", &dates).Error
	return dates, err
}

const rateWindowDays = 30

func habitResponse(habit models.Habit, dates []time.Time, now time.Time) fiber.Map {
	current, longest := stats.HabitStreaks(dates, now)
	rate := stats.CompletionRate(stats.CountInWindow(dates, rateWindowDays, now), rateWindowDays)

	return fiber.Map{
		"id":                habit.ID,
		"user_id":           habit.UserID,
		"name":              habit.Name,
		"description":       habit.Description,
		"color":             habit.Color,
		"icon":              habit.Icon,
		"target_days":       habit.TargetDays,
		"is_active":         habit.IsActive,
		"created_at":        habit.CreatedAt,
		"current_streak":    current,
		"longest_streak":    longest,
		"completion_rate":   rate,
		"total_completions": len(dates),
	}
}

// GetHabits godoc
// @Summary List habits
// @Description Returns the user's habits enriched with streak and completion statistics
// @Tags habits
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Max rows" default(100)
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits [get]
func (hc *HabitsController) GetHabits(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	skip, _ := strconv.Atoi(c.Query("skip", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	var habits []models.Habit
	if err := hc.DB.Where("user_id = ?", userID).
		Offset(skip).Limit(limit).
		Find(&habits).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch habits")
	}

	now := time.Now()
	enriched := make([]fiber.Map, 0, len(habits))
	for _, habit := range habits {
		dates, err := hc.completedDates(habit.ID)
		if err != nil {
			return utils.InternalServerError(c, "Failed to fetch habit logs")
		}
		enriched = append(enriched, habitResponse(habit, dates, now))
	}

	return utils.Success(c, fiber.StatusOK, enriched)
}

// GetHabit godoc
// @Summary Get a habit
// @Tags habits
// @Produce json
// @Param id path int true "Habit ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id} [get]
func (hc *HabitsController) GetHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid habit id")
	}

	var habit models.Habit
	if err := hc.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	dates, err := hc.completedDates(habit.ID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch habit logs")
	}

	return utils.Success(c, fiber.StatusOK, habitResponse(habit, dates, time.Now()))
}

// CreateHabit godoc
// @Summary Create a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Habit data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits [post]
func (hc *HabitsController) CreateHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
		TargetDays  int    `json:"target_days"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" || len(input.Name) > 100 {
		return utils.BadRequest(c, "Habit name must be 1-100 characters")
	}
	if input.Color == "" {
		input.Color = "#6366f1"
	}
	if input.Icon == "" {
		input.Icon = "⭐"
	}
	if input.TargetDays < 1 {
		input.TargetDays = 7
	}

	habit := models.Habit{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
		TargetDays:  input.TargetDays,
		IsActive:    true,
	}
	if err := hc.DB.Create(&habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not create habit")
	}

	return utils.Created(c, habitResponse(habit, nil, time.Now()))
}

// UpdateHabit godoc
// @Summary Update a habit
// @Description Partial update; omitted fields are left unchanged
// @Tags habits
// @Accept json
// @Produce json
// @Param id path int true "Habit ID"
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id} [put]
func (hc *HabitsController) UpdateHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid habit id")
	}

	var habit models.Habit
	if err := hc.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		Icon        *string `json:"icon"`
		TargetDays  *int    `json:"target_days"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > 100 {
			return utils.BadRequest(c, "Habit name must be 1-100 characters")
		}
		habit.Name = *input.Name
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.Color != nil {
		habit.Color = *input.Color
	}
	if input.Icon != nil {
		habit.Icon = *input.Icon
	}
	if input.TargetDays != nil {
		if *input.TargetDays < 1 {
			return utils.BadRequest(c, "target_days must be at least 1")
		}
		habit.TargetDays = *input.TargetDays
	}
	if input.IsActive != nil {
		habit.IsActive = *input.IsActive
	}

	if err := hc.DB.Save(&habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not update habit")
	}

	dates, err := hc.completedDates(habit.ID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch habit logs")
	}

	return utils.Success(c, fiber.StatusOK, habitResponse(habit, dates, time.Now()))
}

// DeleteHabit godoc
// @Summary Delete a habit
// @Description Deletes the habit and all of its logs
// @Tags habits
// @Param id path int true "Habit ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id} [delete]
func (hc *HabitsController) DeleteHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid habit id")
	}

	var habit models.Habit
	if err := hc.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	// Logs go first so the cascade does not depend on driver FK support.
	// Hard delete: a soft-deleted row would keep its (habit, date) slot
	// occupied against the unique index.
	if err := hc.DB.Unscoped().Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete habit logs")
	}
	if err := hc.DB.Delete(&habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete habit")
	}

	return utils.NoContent(c)
}
