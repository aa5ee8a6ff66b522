package routes

import (
	"time"

	"equiptrack/app"
	"equiptrack/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	eqCtl := controllers.NewEquipmentController(s)
	txCtl := controllers.NewTransactionController(s)
	adCtl := controllers.NewAdminController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", adCtl.Login)
		auth.POST("/logout", authMW, adCtl.Logout)
	}

	// ------------------------------
	// 管理员账户（需登录）
	// ------------------------------
	admins := r.Group("/api/admins", authMW)
	{
		admins.POST("", adCtl.Create)
		admins.GET("", adCtl.List)
	}

	// ------------------------------
	// 设备目录 + 生命周期
	// ------------------------------
	equipment := r.Group("/api/equipment", authMW, seenMW)
	{
		equipment.POST("", eqCtl.Create)
		equipment.GET("", eqCtl.List) // ?status=&category=&search=
		equipment.GET("/categories", eqCtl.Categories)
		equipment.GET("/serial/:serial", eqCtl.GetBySerial)
		equipment.GET("/:id", eqCtl.GetByID)
		equipment.PUT("/:id", eqCtl.Update)
		equipment.DELETE("/:id", eqCtl.Delete)
		equipment.PATCH("/:id/status", eqCtl.UpdateStatus)
		equipment.GET("/:id/transactions", eqCtl.WithTransactions)

		equipment.POST("/:id/checkout", txCtl.CheckOut)
		equipment.POST("/:id/checkin", txCtl.CheckIn)
		equipment.POST("/:id/book", txCtl.Book)
	}

	// ------------------------------
	// 流水查询
	// ------------------------------
	txns := r.Group("/api/transactions", authMW, seenMW)
	{
		txns.GET("", txCtl.List) // ?equipmentId=&adminId=&type=&startDate=&endDate=
	}
}
