package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/daran6255/msme/config"
	"github.com/daran6255/msme/geo"
	"github.com/daran6255/msme/handlers"
)

// Register wires all HTTP routes. Auth middleware (middlewares.RequireAuth)
// is available but entity endpoints are deliberately open; only the admin
// login itself is exposed.
func Register(e *echo.Echo, db *gorm.DB, lookup geo.Lookup, cfg *config.Config) {
	auth := handlers.NewAuthHandler(db, cfg.JWTSecret)
	cand := handlers.NewCandidateHandler(db, lookup)
	asm := handlers.NewAssessmentHandler(db)
	att := handlers.NewAttendanceHandler(db)
	biz := handlers.NewBusinessHandler(db)

	e.POST("/admin/login", auth.AdminLogin)

	api := e.Group("/api/v1")

	cd := api.Group("/candidates")
	cd.POST("/create", cand.Create)
	cd.GET("/get-all", cand.List)
	cd.GET("/get/:id", cand.Get)
	cd.PUT("/update-all", cand.BulkUpdate)
	cd.PUT("/update/:id", cand.Update)
	cd.DELETE("/delete-all", cand.DeleteAll)
	cd.DELETE("/delete/:id", cand.Delete)

	as := api.Group("/assessment")
	as.POST("/create", asm.Create)
	as.GET("/get-all", asm.List)
	as.GET("/get/:id", asm.Get)
	as.PUT("/update-all", asm.BulkUpdate)
	as.PUT("/update/:id", asm.Update)
	as.DELETE("/delete-all", asm.DeleteAll)
	as.DELETE("/delete/:id", asm.Delete)

	at := api.Group("/attendance")
	at.POST("/create", att.Create)
	at.GET("/get-all", att.List)
	at.GET("/get/:id", att.Get)
	at.PUT("/update-all", att.BulkUpdate)
	at.PUT("/update/:id", att.Update)
	at.DELETE("/delete-all", att.DeleteAll)
	at.DELETE("/delete/:id", att.Delete)

	// business keeps entity-root routes
	bz := api.Group("/business")
	bz.POST("", biz.Create)
	bz.GET("", biz.List)
	bz.GET("/:id", biz.Get)
	bz.PUT("", biz.BulkUpdate)
	bz.PUT("/:id", biz.Update)
	bz.DELETE("", biz.DeleteAll)
	bz.DELETE("/:id", biz.Delete)
}
