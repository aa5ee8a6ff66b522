package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"equiptrack/db"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestRouter wires the controllers against an in-memory sqlite repo,
// with a stub auth middleware standing in for the Redis-backed session check.
func setupTestRouter(t *testing.T) (*gin.Engine, *db.Repo, *models.Admin) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	repo := db.NewRepo(conn)

	admin, err := repo.CreateAdmin(context.Background(), "admin", "admin@example.com", "password123")
	require.NoError(t, err)

	s := &Srv{Repo: repo, Log: zerolog.Nop()}
	eqCtl := NewEquipmentController(s)
	txCtl := NewTransactionController(s)

	authStub := func(c *gin.Context) {
		c.Set("adminID", admin.ID)
		c.Next()
	}

	r := gin.New()
	g := r.Group("/api/equipment", authStub)
	g.POST("", eqCtl.Create)
	g.GET("", eqCtl.List)
	g.GET("/categories", eqCtl.Categories)
	g.GET("/:id", eqCtl.GetByID)
	g.PUT("/:id", eqCtl.Update)
	g.DELETE("/:id", eqCtl.Delete)
	g.PATCH("/:id/status", eqCtl.UpdateStatus)
	g.GET("/:id/transactions", eqCtl.WithTransactions)
	g.POST("/:id/checkout", txCtl.CheckOut)
	g.POST("/:id/checkin", txCtl.CheckIn)
	g.POST("/:id/book", txCtl.Book)
	return r, repo, admin
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEquipmentEndpoint(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/equipment", gin.H{
		"name": "Camera", "serialNumber": "CAM001", "category": "Video",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var eq models.Equipment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eq))
	assert.Equal(t, models.StatusAvailable, eq.Status)

	// duplicate serial → conflict
	w = doJSON(t, r, http.MethodPost, "/api/equipment", gin.H{
		"name": "Other", "serialNumber": "CAM001", "category": "Video",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// invalid status rejected at the boundary
	w = doJSON(t, r, http.MethodPost, "/api/equipment", gin.H{
		"name": "Bad", "serialNumber": "CAM002", "category": "Video", "status": "broken",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckOutCheckInEndpoints(t *testing.T) {
	r, repo, _ := setupTestRouter(t)
	ctx := context.Background()

	eq := &models.Equipment{Name: "Camera", SerialNumber: "CAM010", Category: "Video"}
	require.NoError(t, repo.CreateEquipment(ctx, eq))

	w := doJSON(t, r, http.MethodPost, "/api/equipment/"+eq.ID+"/checkout", gin.H{
		"userName": "Alice", "expectedReturnDate": "2025-01-10T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// second checkout rejected, current status surfaced
	w = doJSON(t, r, http.MethodPost, "/api/equipment/"+eq.ID+"/checkout", gin.H{"userName": "Bob"})
	require.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(models.StatusCheckedOut), resp["currentStatus"])

	// delete blocked while the checkout is open
	w = doJSON(t, r, http.MethodDelete, "/api/equipment/"+eq.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/equipment/"+eq.ID+"/checkin", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var txn models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txn))
	assert.Equal(t, models.TypeCheckIn, txn.Type)
	assert.Equal(t, models.SystemUserName, txn.UserName)

	// holder view: history kept, current_user gone
	w = doJSON(t, r, http.MethodGet, "/api/equipment/"+eq.ID+"/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail db.EquipmentDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Nil(t, detail.CurrentUser)
	assert.Len(t, detail.Transactions, 2)

	// now deletable
	w = doJSON(t, r, http.MethodDelete, "/api/equipment/"+eq.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBookEndpointRequiresDate(t *testing.T) {
	r, repo, _ := setupTestRouter(t)
	ctx := context.Background()

	eq := &models.Equipment{Name: "Mic", SerialNumber: "MIC010", Category: "Audio"}
	require.NoError(t, repo.CreateEquipment(ctx, eq))

	w := doJSON(t, r, http.MethodPost, "/api/equipment/"+eq.ID+"/book", gin.H{"userName": "Carol"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/equipment/"+eq.ID+"/book", gin.H{
		"userName": "Carol", "expectedReturnDate": "2025-02-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	got, err := repo.FindEquipmentByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, got.Status)
}

func TestUpdateEquipmentEndpoint(t *testing.T) {
	r, repo, _ := setupTestRouter(t)
	ctx := context.Background()

	brand := "Canon"
	eq := &models.Equipment{Name: "Camera", SerialNumber: "CAM020", Category: "Video", Brand: &brand}
	require.NoError(t, repo.CreateEquipment(ctx, eq))

	w := doJSON(t, r, http.MethodPut, "/api/equipment/"+eq.ID, gin.H{
		"name": "Camera Mk II", "brand": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Equipment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Camera Mk II", got.Name)
	assert.Nil(t, got.Brand)

	// name is not nullable
	w = doJSON(t, r, http.MethodPut, "/api/equipment/"+eq.ID, gin.H{"name": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	r, repo, _ := setupTestRouter(t)
	ctx := context.Background()

	for i, cat := range []string{"Video", "Audio", "Audio"} {
		eq := &models.Equipment{Name: "E", SerialNumber: "S" + string(rune('0'+i)), Category: cat}
		require.NoError(t, repo.CreateEquipment(ctx, eq))
	}

	w := doJSON(t, r, http.MethodGet, "/api/equipment/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Audio", "Video"}, resp.Categories)
}
