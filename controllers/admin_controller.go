// controllers/admin_controller.go
package controllers

import (
	"net/http"
	"time"

	"equiptrack/app"

	"github.com/gin-gonic/gin"
)

type AdminController struct{ *Srv }

func NewAdminController(s *Srv) *AdminController { return &AdminController{Srv: s} }

// POST /api/admins
func (ac *AdminController) Create(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	admin, err := ac.Repo.CreateAdmin(c.Request.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		ac.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// POST /api/auth/login
func (ac *AdminController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	admin, err := ac.Repo.AuthenticateAdmin(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		ac.writeRepoError(c, err)
		return
	}
	if admin == nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, admin.ID); err != nil {
		ac.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// POST /api/auth/logout
func (ac *AdminController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -time.Second) // MaxAge -1 删除

	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/admins
func (ac *AdminController) List(c *gin.Context) {
	admins, err := ac.Repo.ListAdmins(c.Request.Context())
	if err != nil {
		ac.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"admins": admins})
}
