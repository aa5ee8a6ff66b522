// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"equiptrack/app"
	"equiptrack/db"
	"equiptrack/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Log       zerolog.Logger
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		Log:       a.Log,
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// 登录成功：创建会话并下发 Cookie
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, adminID string) error {
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, adminID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// adminID is set by app.AuthRequired.
func adminFromCtx(c *gin.Context) (string, bool) {
	v, ok := c.Get("adminID")
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}

// writeRepoError maps the db error taxonomy onto HTTP statuses.
func (s *Srv) writeRepoError(c *gin.Context, err error) {
	var ite *db.InvalidTransitionError
	switch {
	case errors.Is(err, db.ErrEquipmentNotFound), errors.Is(err, db.ErrAdminNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.As(err, &ite):
		c.JSON(http.StatusConflict, app.H{"error": ite.Error(), "currentStatus": ite.Current})
	case errors.Is(err, db.ErrHasOpenTransactions):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrExpectedReturnRequired):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, app.H{"error": "duplicate value for a unique field"})
	default:
		s.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("repo error")
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
