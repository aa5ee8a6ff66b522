// controllers/transaction_controller.go
package controllers

import (
	"net/http"
	"time"

	"equiptrack/app"
	"equiptrack/db"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
)

type TransactionController struct{ *Srv }

func NewTransactionController(s *Srv) *TransactionController {
	return &TransactionController{Srv: s}
}

// POST /api/equipment/:id/checkout
func (tc *TransactionController) CheckOut(c *gin.Context) {
	adminID, ok := adminFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		UserName           string     `json:"userName" binding:"required"`
		UserContact        *string    `json:"userContact"`
		ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
		Notes              *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	txn, err := tc.Repo.CheckOut(c.Request.Context(), db.CheckOutInput{
		EquipmentID:        c.Param("id"),
		AdminID:            adminID,
		UserName:           in.UserName,
		UserContact:        in.UserContact,
		ExpectedReturnDate: in.ExpectedReturnDate,
		Notes:              in.Notes,
	})
	if err != nil {
		tc.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// POST /api/equipment/:id/book
func (tc *TransactionController) Book(c *gin.Context) {
	adminID, ok := adminFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		UserName           string     `json:"userName" binding:"required"`
		UserContact        *string    `json:"userContact"`
		ExpectedReturnDate *time.Time `json:"expectedReturnDate" binding:"required"`
		Notes              *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	txn, err := tc.Repo.Book(c.Request.Context(), db.BookInput{
		EquipmentID:        c.Param("id"),
		AdminID:            adminID,
		UserName:           in.UserName,
		UserContact:        in.UserContact,
		ExpectedReturnDate: in.ExpectedReturnDate,
		Notes:              in.Notes,
	})
	if err != nil {
		tc.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// POST /api/equipment/:id/checkin
func (tc *TransactionController) CheckIn(c *gin.Context) {
	adminID, ok := adminFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	// body 可省略
	var in struct {
		Notes *string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&in)

	txn, err := tc.Repo.CheckIn(c.Request.Context(), c.Param("id"), adminID, in.Notes)
	if err != nil {
		tc.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// GET /api/transactions?equipmentId=&adminId=&type=&startDate=&endDate=
func (tc *TransactionController) List(c *gin.Context) {
	q := db.TransactionQuery{
		EquipmentID: c.Query("equipmentId"),
		AdminID:     c.Query("adminId"),
		Type:        c.Query("type"),
	}
	if q.Type != "" && !models.TransactionType(q.Type).Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid transaction type: " + q.Type})
		return
	}
	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid startDate: " + v})
			return
		}
		q.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid endDate: " + v})
			return
		}
		// 含当天整天
		t = t.Add(24*time.Hour - time.Nanosecond)
		q.EndDate = &t
	}

	txns, err := tc.Repo.ListTransactions(c.Request.Context(), q)
	if err != nil {
		tc.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": txns})
}

// parseDate accepts RFC3339 or bare YYYY-MM-DD.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
