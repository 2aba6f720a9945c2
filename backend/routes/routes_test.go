package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
	"tracker/backend/config"
	"tracker/backend/stats"
	"tracker/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	jwtToken string
)

func TestMain(m *testing.M) {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	SetupRoutes(app, db, cfg)

	os.Exit(m.Run())
}

func request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if jwtToken != "" {
		req.Header.Set("Authorization", jwtToken)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// data unwraps the success envelope.
func data(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	result := decode(t, resp)
	payload, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "expected data object in %v", result)
	return payload
}

// today matches the handlers' notion of the current day, which is
// derived from the local clock.
func today() string {
	return time.Now().Format(stats.DateLayout)
}

func TestAPI(t *testing.T) {
	t.Run("Health", testHealth)
	t.Run("Auth", func(t *testing.T) {
		t.Run("Register", testRegister)
		t.Run("RegisterDuplicate", testRegisterDuplicate)
		t.Run("Login", testLogin)
		t.Run("Me", testMe)
		t.Run("Unauthorized", testUnauthorized)
	})
	t.Run("Habits", func(t *testing.T) {
		t.Run("CreateAndGet", testCreateAndGetHabit)
		t.Run("ToggleIdempotence", testToggleIdempotence)
		t.Run("StreakEnrichment", testStreakEnrichment)
		t.Run("UpdateAndDelete", testUpdateAndDeleteHabit)
	})
	t.Run("Progress", testProgress)
	t.Run("Journal", testJournal)
	t.Run("CheckIns", testCheckIns)
	t.Run("Expenses", testExpenses)
}

func testHealth(t *testing.T) {
	resp := request(t, "GET", "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode(t, resp)["status"])
}

func testRegister(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decode(t, resp)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])
}

func testRegisterDuplicate(t *testing.T) {
	resp := request(t, "POST", "/api/auth/register", map[string]string{
		"username": "testuser",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = request(t, "POST", "/api/auth/register", map[string]string{
		"username": "otheruser",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func testLogin(t *testing.T) {
	resp := request(t, "POST", "/api/auth/login", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	require.NotEmpty(t, result["token"])
	jwtToken = result["token"].(string)
}

func testMe(t *testing.T) {
	resp := request(t, "GET", "/api/auth/me", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := data(t, resp)
	assert.Equal(t, "testuser", payload["username"])
	assert.Equal(t, "test@example.com", payload["email"])
}

func testUnauthorized(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/habits/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func createHabit(t *testing.T, name string) uint {
	t.Helper()
	resp := request(t, "POST", "/api/habits/", map[string]interface{}{"name": name})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	payload := data(t, resp)
	return uint(payload["id"].(float64))
}

func testCreateAndGetHabit(t *testing.T) {
	id := createHabit(t, "Read")

	resp := request(t, "GET", fmt.Sprintf("/api/habits/%d", id), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := data(t, resp)
	assert.Equal(t, "Read", payload["name"])
	assert.Equal(t, "#6366f1", payload["color"])
	assert.Equal(t, float64(7), payload["target_days"])
	assert.Equal(t, true, payload["is_active"])
	assert.Equal(t, float64(0), payload["current_streak"])
	assert.Equal(t, float64(0), payload["total_completions"])

	resp = request(t, "GET", "/api/habits/99999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func testToggleIdempotence(t *testing.T) {
	id := createHabit(t, "Meditate")
	path := fmt.Sprintf("/api/habits/%d/logs", id)

	resp := request(t, "POST", path, map[string]string{"date": today()})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, data(t, resp)["completed"])

	// Second toggle flips the flag back.
	resp = request(t, "POST", path, map[string]string{"date": today()})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, data(t, resp)["completed"])

	// Still exactly one log row for the date.
	resp = request(t, "GET", path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	logs := decode(t, resp)["data"].([]interface{})
	assert.Len(t, logs, 1)

	resp = request(t, "POST", path, map[string]string{"date": "not-a-date"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func testStreakEnrichment(t *testing.T) {
	id := createHabit(t, "Run")
	path := fmt.Sprintf("/api/habits/%d/logs", id)

	yesterday := time.Now().AddDate(0, 0, -1).Format(stats.DateLayout)
	request(t, "POST", path, map[string]string{"date": today()})
	request(t, "POST", path, map[string]string{"date": yesterday})

	resp := request(t, "GET", fmt.Sprintf("/api/habits/%d", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := data(t, resp)
	assert.Equal(t, float64(2), payload["current_streak"])
	assert.Equal(t, float64(2), payload["longest_streak"])
	assert.Equal(t, float64(2), payload["total_completions"])
	assert.Equal(t, stats.CompletionRate(2, 30), payload["completion_rate"])
}

func testUpdateAndDeleteHabit(t *testing.T) {
	id := createHabit(t, "Write")

	resp := request(t, "PUT", fmt.Sprintf("/api/habits/%d", id), map[string]interface{}{
		"name":      "Write daily",
		"is_active": false,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := data(t, resp)
	assert.Equal(t, "Write daily", payload["name"])
	assert.Equal(t, false, payload["is_active"])

	resp = request(t, "DELETE", fmt.Sprintf("/api/habits/%d", id), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = request(t, "GET", fmt.Sprintf("/api/habits/%d", id), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func testProgress(t *testing.T) {
	id := createHabit(t, "Stretch")
	request(t, "POST", fmt.Sprintf("/api/habits/%d/logs", id), map[string]string{"date": today()})

	resp := request(t, "GET", "/api/progress", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	daily := result["daily"].(map[string]interface{})
	weekly := result["weekly"].(map[string]interface{})
	monthly := result["monthly"].(map[string]interface{})

	assert.Equal(t, today(), daily["date"])
	assert.GreaterOrEqual(t, daily["total_habits"].(float64), float64(1))
	assert.GreaterOrEqual(t, daily["completed_habits"].(float64), float64(1))
	assert.Len(t, weekly["daily_breakdown"].([]interface{}), 7)
	assert.NotEmpty(t, monthly["weekly_breakdown"])
}

func testJournal(t *testing.T) {
	entry := map[string]interface{}{
		"entry_type": "daily",
		"date":       today(),
		"content":    "first entry",
	}

	resp := request(t, "POST", "/api/journal/entries", entry)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	entryID := data(t, resp)["id"].(float64)

	// Duplicate (type, date) is a conflict.
	resp = request(t, "POST", "/api/journal/entries", entry)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Upsert updates instead.
	entry["content"] = "revised entry"
	resp = request(t, "POST", "/api/journal/save", entry)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := data(t, resp)
	assert.Equal(t, entryID, payload["id"].(float64))
	assert.Equal(t, "revised entry", payload["content"])

	// Missing entries come back as an editable scaffold.
	resp = request(t, "GET", "/api/journal/entry/weekly/2030-01-07", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload = data(t, resp)
	assert.Equal(t, float64(0), payload["id"])
	assert.Equal(t, "weekly", payload["entry_type"])

	resp = request(t, "POST", "/api/journal/entries", map[string]interface{}{
		"entry_type": "hourly",
		"date":       today(),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	rating := 9
	resp = request(t, "POST", "/api/journal/entries", map[string]interface{}{
		"entry_type": "monthly",
		"date":       today(),
		"rating":     rating,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func testCheckIns(t *testing.T) {
	// Login already recorded today's check-in; recording again is a no-op.
	resp := request(t, "POST", "/api/checkins/today", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = request(t, "POST", "/api/checkins/today", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, "GET", "/api/checkins/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, float64(1), result["total_checkins"])
	assert.Equal(t, float64(1), result["current_streak"])
	assert.Equal(t, float64(1), result["longest_streak"])
	assert.Equal(t, float64(1), result["this_month_checkins"])

	now := time.Now()
	resp = request(t, "GET", fmt.Sprintf("/api/checkins/calendar/%d/%d", now.Year(), int(now.Month())), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decode(t, resp)
	checkins := result["checkins"].([]interface{})
	assert.Contains(t, checkins, today())
}

func testExpenses(t *testing.T) {
	now := time.Now()

	resp := request(t, "PUT", "/api/expenses/budget", map[string]interface{}{
		"month":  int(now.Month()),
		"year":   now.Year(),
		"amount": 1000.0,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, "POST", "/api/expenses/today", map[string]interface{}{
		"amount": 100.0,
		"note":   "groceries",
		"date":   today(),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	expenseID := data(t, resp)["id"].(float64)

	// Only today's date is accepted.
	yesterday := now.AddDate(0, 0, -1).Format(stats.DateLayout)
	resp = request(t, "POST", "/api/expenses/today", map[string]interface{}{
		"amount": 50.0,
		"date":   yesterday,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = request(t, "PUT", fmt.Sprintf("/api/expenses/expense/%d", int(expenseID)), map[string]interface{}{
		"amount": 150.0,
		"note":   "groceries and coffee",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, "GET", "/api/expenses/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decode(t, resp)
	assert.Equal(t, 1000.0, result["budget"])
	assert.Equal(t, 150.0, result["total_spent"])
	assert.Equal(t, 850.0, result["saved"])
	assert.Len(t, result["expenses"].([]interface{}), 1)

	resp = request(t, "DELETE", fmt.Sprintf("/api/expenses/expense/%d", int(expenseID)), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = request(t, "PUT", "/api/expenses/daily-budget", map[string]interface{}{
		"date":   today(),
		"amount": 40.0,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, "GET", "/api/expenses/daily-budget?date="+today(), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 40.0, data(t, resp)["amount"])
}
