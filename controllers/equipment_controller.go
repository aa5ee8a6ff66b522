// controllers/equipment_controller.go
package controllers

import (
	"net/http"

	"equiptrack/app"
	"equiptrack/db"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

// POST /api/equipment
func (ec *EquipmentController) Create(c *gin.Context) {
	var in struct {
		Name         string  `json:"name" binding:"required"`
		SerialNumber string  `json:"serialNumber" binding:"required"`
		Category     string  `json:"category" binding:"required"`
		Description  *string `json:"description"`
		Brand        *string `json:"brand"`
		Model        *string `json:"model"`
		Status       string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	status := models.StatusAvailable
	if in.Status != "" {
		status = models.EquipmentStatus(in.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid status: " + in.Status})
			return
		}
	}

	eq := &models.Equipment{
		Name:         in.Name,
		SerialNumber: in.SerialNumber,
		Category:     in.Category,
		Description:  in.Description,
		Brand:        in.Brand,
		Model:        in.Model,
		Status:       status,
	}
	if err := ec.Repo.CreateEquipment(c.Request.Context(), eq); err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eq)
}

// GET /api/equipment?status=&category=&search=
func (ec *EquipmentController) List(c *gin.Context) {
	if s := c.Query("status"); s != "" && !models.EquipmentStatus(s).Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status: " + s})
		return
	}
	items, err := ec.Repo.ListEquipment(c.Request.Context(), db.EquipmentQuery{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// GET /api/equipment/:id
func (ec *EquipmentController) GetByID(c *gin.Context) {
	eq, err := ec.Repo.FindEquipmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// GET /api/equipment/serial/:serial — exact, case-sensitive
func (ec *EquipmentController) GetBySerial(c *gin.Context) {
	eq, err := ec.Repo.FindEquipmentBySerial(c.Request.Context(), c.Param("serial"))
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// updatableFields whitelists catalog columns; a JSON null resets nullable
// columns to NULL.
var updatableFields = map[string]bool{
	"name":        true,
	"category":    true,
	"description": true,
	"brand":       true,
	"model":       true,
	"status":      true,
}

// PUT /api/equipment/:id
func (ec *EquipmentController) Update(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if !updatableFields[k] {
			continue
		}
		if v == nil {
			switch k {
			case "description", "brand", "model":
				fields[k] = nil
				continue
			default:
				c.JSON(http.StatusBadRequest, app.H{"error": k + " cannot be null"})
				return
			}
		}
		s, ok := v.(string)
		if !ok {
			c.JSON(http.StatusBadRequest, app.H{"error": k + " must be a string"})
			return
		}
		if k == "status" && !models.EquipmentStatus(s).Valid() {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid status: " + s})
			return
		}
		fields[k] = s
	}

	eq, err := ec.Repo.UpdateEquipment(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// PATCH /api/equipment/:id/status — maintenance override, no transition check
func (ec *EquipmentController) UpdateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	status := models.EquipmentStatus(in.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status: " + in.Status})
		return
	}

	eq, err := ec.Repo.UpdateEquipmentStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// DELETE /api/equipment/:id
func (ec *EquipmentController) Delete(c *gin.Context) {
	deleted, err := ec.Repo.DeleteEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"deleted": deleted})
}

// GET /api/equipment/categories
func (ec *EquipmentController) Categories(c *gin.Context) {
	cats, err := ec.Repo.ListCategories(c.Request.Context())
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"categories": cats})
}

// GET /api/equipment/:id/transactions — item + ledger + current holder
func (ec *EquipmentController) WithTransactions(c *gin.Context) {
	detail, err := ec.Repo.EquipmentWithTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		ec.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
