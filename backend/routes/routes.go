package routes

import (
	"tracker/backend/config"
	"tracker/backend/controllers"
	"tracker/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Daily Habit Tracker API", "status": "active"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Habit routes
	habitsController := controllers.NewHabitsController(db, cfg)
	habits := app.Group("/api/habits", authMiddleware)
	habits.Get("/", habitsController.GetHabits)
	habits.Post("/", habitsController.CreateHabit)

	// Habit log routes; the static logs path is registered before the
	// :id parameter routes so it is not captured as a habit id.
	logsController := controllers.NewLogsController(db, cfg)
	habits.Delete("/logs/:logId", logsController.DeleteHabitLog)
	habits.Get("/:id", habitsController.GetHabit)
	habits.Put("/:id", habitsController.UpdateHabit)
	habits.Delete("/:id", habitsController.DeleteHabit)
	habits.Get("/:id/logs", logsController.GetHabitLogs)
	habits.Post("/:id/logs", logsController.ToggleHabitLog)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)

	// Journal routes
	journalController := controllers.NewJournalController(db, cfg)
	journal := app.Group("/api/journal", authMiddleware)
	journal.Get("/entries", journalController.GetEntries)
	journal.Post("/entries", journalController.CreateEntry)
	journal.Get("/entries/:id", journalController.GetEntry)
	journal.Put("/entries/:id", journalController.UpdateEntry)
	journal.Delete("/entries/:id", journalController.DeleteEntry)
	journal.Get("/entry/:type/:date", journalController.GetEntryByDate)
	journal.Post("/save", journalController.SaveEntry)

	// Check-in routes
	checkinController := controllers.NewCheckInController(db, cfg)
	checkins := app.Group("/api/checkins", authMiddleware)
	checkins.Post("/today", checkinController.RecordToday)
	checkins.Get("/calendar/:year/:month", checkinController.MonthlyCalendar)
	checkins.Get("/stats", checkinController.Stats)

	// Expense routes
	expenseController := controllers.NewExpenseController(db, cfg)
	expenses := app.Group("/api/expenses", authMiddleware)
	expenses.Get("/summary", expenseController.Summary)
	expenses.Post("/today", expenseController.SaveToday)
	expenses.Put("/expense/:id", expenseController.UpdateExpense)
	expenses.Delete("/expense/:id", expenseController.DeleteExpense)
	expenses.Put("/budget", expenseController.UpsertBudget)
	expenses.Put("/daily-budget", expenseController.UpsertDailyBudget)
	expenses.Get("/daily-budget", expenseController.GetDailyBudget)
}
