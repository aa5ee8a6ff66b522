// app/bootstrap.go
package app

import (
	"context"

	"equiptrack/db"
)

// BootstrapFirstAdmin creates the initial admin account from env when the
// admins table is empty. Without it there is no way to log in and create
// further admins.
func BootstrapFirstAdmin(ctx context.Context, a *App, repo *db.Repo) {
	cfg := a.Config
	if cfg.BootstrapUsername == "" || cfg.BootstrapPassword == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		a.Log.Error().Err(err).Msg("bootstrap: count admins failed")
		return
	}
	if n > 0 {
		return // 已经有管理员，跳过
	}

	admin, err := repo.CreateAdmin(ctx, cfg.BootstrapUsername, cfg.BootstrapEmail, cfg.BootstrapPassword)
	if err != nil {
		a.Log.Error().Err(err).Msg("bootstrap: create admin failed")
		return
	}
	a.Log.Info().Str("username", admin.Username).Msg("bootstrap: created first admin")
}
