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

type ExpenseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewExpenseController(db *gorm.DB, cfg *config.Config) *ExpenseController {
	return &ExpenseController{DB: db, Cfg: cfg}
}

func expenseResponse(expense models.Expense) fiber.Map {
	return fiber.Map{
		"id":         expense.ID,
		"user_id":    expense.UserID,
		"date":       expense.Date.Format(stats.DateLayout),
		"amount":     expense.Amount,
		"note":       expense.Note,
		"created_at": expense.CreatedAt,
		"updated_at": expense.UpdatedAt,
	}
}

// Summary godoc
// @Summary Monthly expense summary
// @Description Returns the month's expenses, budget, total spent and amount saved
// @Tags expenses
// @Produce json
// @Param month query int false "Month (1-12), defaults to current"
// @Param year query int false "Year, defaults to current"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/summary [get]
func (ec *ExpenseController) Summary(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return utils.BadRequest(c, "Invalid month")
	}

	start, next := stats.MonthBounds(year, time.Month(month))

	var expenses []models.Expense
	if err := ec.DB.
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, next).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch expenses")
	}

	var budget models.MonthlyBudget
	budgetAmount := 0.0
	err = ec.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&budget).Error
	if err == nil {
		budgetAmount = budget.Amount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Failed to fetch budget")
	}

	totalSpent := 0.0
	out := make([]fiber.Map, 0, len(expenses))
	for _, expense := range expenses {
		totalSpent += expense.Amount
		out = append(out, expenseResponse(expense))
	}

	saved := budgetAmount - totalSpent
	if saved < 0 {
		saved = 0
	}

	return c.JSON(fiber.Map{
		"month":       month,
		"year":        year,
		"budget":      budgetAmount,
		"total_spent": totalSpent,
		"saved":       saved,
		"expenses":    out,
	})
}

// SaveToday godoc
// @Summary Record today's expense
// @Description Creates a new expense entry dated today; multiple entries per day are allowed
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Amount, note and date"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/today [post]
func (ec *ExpenseController) SaveToday(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
		Date   string  `json:"date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "Amount must be greater than zero")
	}

	expenseDate, err := parseDate(input.Date)
	if err != nil {
		return utils.BadRequest(c, "Invalid date")
	}
	today := stats.DayOf(time.Now())
	if !expenseDate.Equal(today) {
		return utils.BadRequest(c, "You can only save today's expense")
	}

	expense := models.Expense{
		UserID: userID,
		Date:   today,
		Amount: input.Amount,
		Note:   input.Note,
	}
	if err := ec.DB.Create(&expense).Error; err != nil {
		return utils.InternalServerError(c, "Could not create expense")
	}

	return utils.Created(c, expenseResponse(expense))
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Only today's expenses can be edited
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body map[string]interface{} true "Amount and note"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/expense/{id} [put]
func (ec *ExpenseController) UpdateExpense(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	expenseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid expense id")
	}

	var expense models.Expense
	if err := ec.DB.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		return utils.NotFound(c, "Expense not found")
	}

	today := stats.DayOf(time.Now())
	if !stats.DayOf(expense.Date).Equal(today) {
		return utils.BadRequest(c, "You can only edit today's expenses")
	}

	var input struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "Amount must be greater than zero")
	}

	expense.Amount = input.Amount
	expense.Note = input.Note
	if err := ec.DB.Save(&expense).Error; err != nil {
		return utils.InternalServerError(c, "Could not update expense")
	}

	return utils.Success(c, fiber.StatusOK, expenseResponse(expense))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Only today's expenses can be deleted
// @Tags expenses
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/expense/{id} [delete]
func (ec *ExpenseController) DeleteExpense(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	expenseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid expense id")
	}

	var expense models.Expense
	if err := ec.DB.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		return utils.NotFound(c, "Expense not found")
	}

	today := stats.DayOf(time.Now())
	if !stats.DayOf(expense.Date).Equal(today) {
		return utils.BadRequest(c, "You can only delete today's expenses")
	}

	if err := ec.DB.Delete(&expense).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete expense")
	}

	return utils.NoContent(c)
}

// UpsertBudget godoc
// @Summary Set the monthly budget
// @Description Creates or updates the budget for (month, year)
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Month, year and amount"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/budget [put]
func (ec *ExpenseController) UpsertBudget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Month  int     `json:"month"`
		Year   int     `json:"year"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Month < 1 || input.Month > 12 {
		return utils.BadRequest(c, "Month must be between 1 and 12")
	}
	if input.Year < 2000 || input.Year > 2100 {
		return utils.BadRequest(c, "Year must be between 2000 and 2100")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "Amount must not be negative")
	}

	var budget models.MonthlyBudget
	err = ec.DB.Where("user_id = ? AND month = ? AND year = ?", userID, input.Month, input.Year).
		First(&budget).Error
	switch {
	case err == nil:
		budget.Amount = input.Amount
		if err := ec.DB.Save(&budget).Error; err != nil {
			return utils.InternalServerError(c, "Could not update budget")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.MonthlyBudget{
			UserID: userID,
			Month:  input.Month,
			Year:   input.Year,
			Amount: input.Amount,
		}
		if err := ec.DB.Create(&budget).Error; err != nil {
			return utils.InternalServerError(c, "Could not create budget")
		}
	default:
		return utils.InternalServerError(c, "Failed to query budget")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":         budget.ID,
		"user_id":    budget.UserID,
		"month":      budget.Month,
		"year":       budget.Year,
		"amount":     budget.Amount,
		"created_at": budget.CreatedAt,
		"updated_at": budget.UpdatedAt,
	})
}

// UpsertDailyBudget godoc
// @Summary Set a daily budget
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Date and amount"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/daily-budget [put]
func (ec *ExpenseController) UpsertDailyBudget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	budgetDate, err := parseDate(input.Date)
	if err != nil {
		return utils.BadRequest(c, "Invalid date")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "Amount must not be negative")
	}

	var budget models.DailyBudget
	err = ec.DB.Where("user_id = ? AND date = ?", userID, budgetDate).First(&budget).Error
	switch {
	case err == nil:
		budget.Amount = input.Amount
		if err := ec.DB.Save(&budget).Error; err != nil {
			return utils.InternalServerError(c, "Could not update daily budget")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.DailyBudget{UserID: userID, Date: budgetDate, Amount: input.Amount}
		if err := ec.DB.Create(&budget).Error; err != nil {
			return utils.InternalServerError(c, "Could not create daily budget")
		}
	default:
		return utils.InternalServerError(c, "Failed to query daily budget")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":      budget.ID,
		"user_id": budget.UserID,
		"date":    budget.Date.Format(stats.DateLayout),
		"amount":  budget.Amount,
	})
}

// GetDailyBudget godoc
// @Summary Get a daily budget
// @Tags expenses
// @Produce json
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /expenses/daily-budget [get]
func (ec *ExpenseController) GetDailyBudget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	budgetDate, err := parseDate(c.Query("date"))
	if err != nil {
		return utils.BadRequest(c, "Invalid date")
	}

	var budget models.DailyBudget
	if err := ec.DB.Where("user_id = ? AND date = ?", userID, budgetDate).First(&budget).Error; err != nil {
		return utils.NotFound(c, "Daily budget not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":      budget.ID,
		"user_id": budget.UserID,
		"date":    budget.Date.Format(stats.DateLayout),
		"amount":  budget.Amount,
	})
}
