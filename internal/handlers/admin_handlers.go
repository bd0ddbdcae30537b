package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milsabores/pasteleria-golang/internal/models"
)

//
// --- Admin: Customer Management ---
//

// GetAllUsers is the handler for GET /usuarios (admin only).
func (h *Handlers) GetAllUsers(c *gin.Context) {
	query := `
		SELECT id, role, email, full_name, phone_number, address_line1, city, created_at, updated_at
		FROM users
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Role, &u.Email, &u.FullName, &u.PhoneNumber,
			&u.AddressLine1, &u.City, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan user row"})
			return
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating user rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserInput uses pointers so PATCH can tell "absent" from "zero".
type UpdateUserInput struct {
	FullName    *string `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        *string `json:"role"`
}

// UpdateUser is the handler for PATCH /usuarios/:id (admin only).
func (h *Handlers) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setClauses := []string{}
	args := []interface{}{}

	if input.FullName != nil {
		setClauses = append(setClauses, "full_name = ?")
		args = append(args, *input.FullName)
	}
	if input.PhoneNumber != nil {
		setClauses = append(setClauses, "phone_number = ?")
		args = append(args, *input.PhoneNumber)
	}
	if input.Role != nil {
		if *input.Role != "admin" && *input.Role != "customer" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'admin' or 'customer'"})
			return
		}
		setClauses = append(setClauses, "role = ?")
		args = append(args, *input.Role)
	}

	if len(setClauses) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now(), userID)

	query := "UPDATE users SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = ?"

	result, err := h.DB.Exec(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser is the handler for DELETE /usuarios/:id (admin only).
// Admins cannot delete their own account; that would lock them out mid-session.
func (h *Handlers) DeleteUser(c *gin.Context) {
	targetID := c.Param("id")

	userID_raw, _ := c.Get("userID")
	if selfID := strconv.FormatInt(userID_raw.(int64), 10); selfID == targetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM users WHERE id = ?", targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

//
// --- Admin: Settings ---
//
// A single numeric setting survives from the back-office: the monthly sales
// goal the dashboard measures revenue against.
//

const monthlyGoalKey = "monthly_sales_goal"

// GetSettings is the handler for GET /admin/settings.
func (h *Handlers) GetSettings(c *gin.Context) {
	var goal int
	err := h.DB.QueryRow(
		"SELECT setting_value FROM settings WHERE setting_key = ?", monthlyGoalKey).Scan(&goal)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}
	// Missing row simply means the goal has never been set; report zero.

	c.JSON(http.StatusOK, gin.H{"monthlySalesGoal": goal})
}

// UpdateSettingsInput defines the JSON for PATCH /admin/settings.
type UpdateSettingsInput struct {
	MonthlySalesGoal *int `json:"monthlySalesGoal" binding:"required"`
}

// UpdateSettings is the handler for PATCH /admin/settings.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.MonthlySalesGoal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Goal cannot be negative"})
		return
	}

	query := `
		INSERT INTO settings (setting_key, setting_value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`

	if _, err := h.DB.Exec(query, monthlyGoalKey, *input.MonthlySalesGoal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "monthlySalesGoal": *input.MonthlySalesGoal})
}

//
// --- Admin: Dashboard Stats ---
//

type AdminStats struct {
	MonthlyRevenue   int `json:"monthlyRevenue"`
	MonthlySalesGoal int `json:"monthlySalesGoal"`
	PendingOrders    int `json:"pendingOrders"` // status 'recibido'
	InPreparation    int `json:"inPreparation"`
	TotalCustomers   int `json:"totalCustomers"`
}

// GetAdminStats returns KPI data for the back-office dashboard.
// GET /admin/dashboard-stats
func (h *Handlers) GetAdminStats(c *gin.Context) {
	stats := AdminStats{}

	// 1. Revenue for the current calendar month (cancelled orders excluded).
	// COALESCE(..., 0) returns 0 instead of NULL when there are no orders.
	queryRevenue := `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status != 'cancelado'
		  AND YEAR(created_at) = YEAR(CURDATE())
		  AND MONTH(created_at) = MONTH(CURDATE())`
	if err := h.DB.QueryRow(queryRevenue).Scan(&stats.MonthlyRevenue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}

	// 2. Goal from settings (zero when never configured).
	err := h.DB.QueryRow(
		"SELECT setting_value FROM settings WHERE setting_key = ?", monthlyGoalKey).Scan(&stats.MonthlySalesGoal)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sales goal"})
		return
	}

	// 3. Order pipeline counts.
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE status = 'recibido'").Scan(&stats.PendingOrders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending orders"})
		return
	}
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE status = 'en-preparacion'").Scan(&stats.InPreparation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders in preparation"})
		return
	}

	// 4. Customer count.
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'customer'").Scan(&stats.TotalCustomers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
