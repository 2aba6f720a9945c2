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

type JournalController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewJournalController(db *gorm.DB, cfg *config.Config) *JournalController {
	return &JournalController{DB: db, Cfg: cfg}
}

func validEntryType(t string) bool {
	switch t {
	case "daily", "weekly", "monthly":
		return true
	}
	return false
}

func entryResponse(entry models.JournalEntry) fiber.Map {
	return fiber.Map{
		"id":             entry.ID,
		"user_id":        entry.UserID,
		"entry_type":     entry.EntryType,
		"date":           entry.Date.Format(stats.DateLayout),
		"content":        entry.Content,
		"goal_text":      entry.GoalText,
		"daily_progress": entry.DailyProgress,
		"rating":         entry.Rating,
		"feedback":       entry.Feedback,
		"created_at":     entry.CreatedAt,
		"updated_at":     entry.UpdatedAt,
	}
}

type journalInput struct {
	EntryType     string  `json:"entry_type"`
	Date          string  `json:"date"`
	Content       *string `json:"content"`
	GoalText      *string `json:"goal_text"`
	DailyProgress *string `json:"daily_progress"`
	Rating        *int    `json:"rating"`
	Feedback      *string `json:"feedback"`
}

// GetEntries godoc
// @Summary List journal entries
// @Description Returns the user's entries, newest first, with optional type and date filters
// @Tags journal
// @Produce json
// @Param entry_type query string false "daily|weekly|monthly"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/entries [get]
func (jc *JournalController) GetEntries(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	query := jc.DB.Where("user_id = ?", userID)

	if entryType := c.Query("entry_type"); entryType != "" {
		if !validEntryType(entryType) {
			return utils.BadRequest(c, "entry_type must be daily, weekly or monthly")
		}
		query = query.Where("entry_type = ?", entryType)
	}
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

	var entries []models.JournalEntry
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch entries")
	}

	out := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryResponse(entry))
	}

	return utils.Success(c, fiber.StatusOK, out)
}

// GetEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/entries/{id} [get]
func (jc *JournalController) GetEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entryID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid entry id")
	}

	var entry models.JournalEntry
	if err := jc.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return utils.NotFound(c, "Journal entry not found")
	}

	return utils.Success(c, fiber.StatusOK, entryResponse(entry))
}

// GetEntryByDate godoc
// @Summary Get an entry by type and date
// @Description Returns an empty scaffold when no entry exists yet
// @Tags journal
// @Produce json
// @Param type path string true "daily|weekly|monthly"
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/entry/{type}/{date} [get]
func (jc *JournalController) GetEntryByDate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entryType := c.Params("type")
	if !validEntryType(entryType) {
		return utils.BadRequest(c, "entry_type must be daily, weekly or monthly")
	}
	entryDate, err := parseDate(c.Params("date"))
	if err != nil {
		return utils.BadRequest(c, "Invalid date")
	}

	var entry models.JournalEntry
	err = jc.DB.Where("user_id = ? AND entry_type = ? AND date = ?", userID, entryType, entryDate).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No entry yet: send an empty scaffold the client can edit.
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"id":             0,
			"user_id":        userID,
			"entry_type":     entryType,
			"date":           entryDate.Format(stats.DateLayout),
			"content":        "",
			"goal_text":      "",
			"daily_progress": "{}",
			"rating":         nil,
			"feedback":       "",
		})
	} else if err != nil {
		return utils.InternalServerError(c, "Failed to fetch entry")
	}

	return utils.Success(c, fiber.StatusOK, entryResponse(entry))
}

// CreateEntry godoc
// @Summary Create a journal entry
// @Description Fails with 409 when an entry already exists for the type and date
// @Tags journal
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Entry data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/entries [post]
func (jc *JournalController) CreateEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	input, entryDate, msg := parseEntryInput(c)
	if msg != "" {
		return utils.BadRequest(c, msg)
	}

	var existing models.JournalEntry
	err = jc.DB.Where("user_id = ? AND entry_type = ? AND date = ?", userID, input.EntryType, entryDate).
		First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Journal entry already exists for this date and type")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Failed to query entries")
	}

	entry := models.JournalEntry{
		UserID:    userID,
		EntryType: input.EntryType,
		Date:      entryDate,
		Rating:    input.Rating,
	}
	applyEntryFields(&entry, input)

	if err := jc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not create entry")
	}

	return utils.Created(c, entryResponse(entry))
}

// UpdateEntry godoc
// @Summary Update a journal entry
// @Description Partial update; omitted fields are left unchanged
// @Tags journal
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/entries/{id} [put]
func (jc *JournalController) UpdateEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entryID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid entry id")
	}

	var entry models.JournalEntry
	if err := jc.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return utils.NotFound(c, "Journal entry not found")
	}

	var input journalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return utils.BadRequest(c, "Rating must be between 1 and 5")
	}

	if input.Rating != nil {
		entry.Rating = input.Rating
	}
	applyEntryFields(&entry, input)

	if err := jc.DB.Save(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not update entry")
	}

	return utils.Success(c, fiber.StatusOK, entryResponse(entry))
}

// SaveEntry godoc
// @Summary Create or update an entry
// @Description Upsert keyed by (type, date)
// @Tags journal
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Entry data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/save [post]
func (jc *JournalController) SaveEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	input, entryDate, msg := parseEntryInput(c)
	if msg != "" {
		return utils.BadRequest(c, msg)
	}

	var entry models.JournalEntry
	err = jc.DB.Where("user_id = ? AND entry_type = ? AND date = ?", userID, input.EntryType, entryDate).
		First(&entry).Error
	switch {
	case err == nil:
		if input.Rating != nil {
			entry.Rating = input.Rating
		}
		applyEntryFields(&entry, input)
		if err := jc.DB.Save(&entry).Error; err != nil {
			return utils.InternalServerError(c, "Could not update entry")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.JournalEntry{
			UserID:    userID,
			EntryType: input.EntryType,
			Date:      entryDate,
			Rating:    input.Rating,
		}
		applyEntryFields(&entry, input)
		if err := jc.DB.Create(&entry).Error; err != nil {
			return utils.InternalServerError(c, "Could not create entry")
		}
	default:
		return utils.InternalServerError(c, "Failed to query entries")
	}

	return utils.Success(c, fiber.StatusOK, entryResponse(entry))
}

// DeleteEntry godoc
// @Summary Delete a journal entry
// @Tags journal
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/entries/{id} [delete]
func (jc *JournalController) DeleteEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entryID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid entry id")
	}

	var entry models.JournalEntry
	if err := jc.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return utils.NotFound(c, "Journal entry not found")
	}

	// Hard delete so the (type, date) slot can be written again.
	if err := jc.DB.Unscoped().Delete(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete entry")
	}

	return c.JSON(fiber.Map{"message": "Journal entry deleted successfully"})
}

// parseEntryInput validates the shared entry payload. A non-empty
// message means invalid input.
func parseEntryInput(c *fiber.Ctx) (journalInput, time.Time, string) {
	var input journalInput
	if err := c.BodyParser(&input); err != nil {
		return input, time.Time{}, "Cannot parse JSON"
	}
	if !validEntryType(input.EntryType) {
		return input, time.Time{}, "entry_type must be daily, weekly or monthly"
	}
	entryDate, err := parseDate(input.Date)
	if err != nil {
		return input, time.Time{}, "Invalid date"
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return input, time.Time{}, "Rating must be between 1 and 5"
	}
	return input, entryDate, ""
}

func applyEntryFields(entry *models.JournalEntry, input journalInput) {
	if input.Content != nil {
		entry.Content = *input.Content
	}
	if input.GoalText != nil {
		entry.GoalText = *input.GoalText
	}
	if input.DailyProgress != nil {
		entry.DailyProgress = *input.DailyProgress
	}
	if input.Feedback != nil {
		entry.Feedback = *input.Feedback
	}
}
