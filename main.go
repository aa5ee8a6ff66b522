package main

import (
	"context"

	"equiptrack/app"
	"equiptrack/db"
	"equiptrack/routes"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	app.BootstrapFirstAdmin(context.Background(), application, db.NewRepo(application.DB))

	application.Log.Info().Str("port", application.Config.Port).Msg("listening")
	_ = r.Run(":" + application.Config.Port)
}
