// Package router wires every feature handler into the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "membership_backend/internal/feature/auth/transport/handler"
	membershiphandler "membership_backend/internal/feature/membership/transport/handler"
	paymenthandler "membership_backend/internal/feature/payments/transport/handler"
	planhandler "membership_backend/internal/feature/plans/transport/handler"
	receipthandler "membership_backend/internal/feature/receiptscan/transport/handler"
	settingshandler "membership_backend/internal/feature/settings/transport/handler"
	jwtmw "membership_backend/internal/platform/jwt"
	"membership_backend/internal/platform/http/handler"
)

// Handlers groups every feature handler the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Members   *membershiphandler.MemberHandler
	Plans     *planhandler.PlanHandler
	Payments  *paymenthandler.PaymentHandler
	Settings  *settingshandler.SettingsHandler
	Receipts  *receipthandler.ReceiptScanHandler
	UploadDir string
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Uploaded images (profile photos, payment screenshots, QR codes)
	r.Static("/uploads", h.UploadDir)

	// Public routes
	r.POST("/auth/login", h.Auth.Login)
	r.POST("/admin/login", h.Auth.AdminLogin)
	r.POST("/membership/apply", h.Members.Apply)
	r.GET("/membership/stats", h.Members.Stats)
	r.GET("/members", h.Members.PublicList)
	r.GET("/payment-details", h.Settings.GetPublic)

	// Authenticated routes (member or admin token)
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/auth/me", h.Auth.Me)
		auth.GET("/members/me", h.Members.Profile)
		auth.POST("/payments", h.Payments.Submit)
		auth.GET("/payments/me", h.Payments.ListMine)
	}

	// Admin-only routes
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.RequireAdmin())
	{
		admin.GET("/summary", h.Members.Summary)

		admin.GET("/members", h.Members.List)
		admin.POST("/members", h.Members.Create)
		admin.GET("/members/export", h.Members.ExportCSV)
		admin.GET("/members/:id", h.Members.Get)
		admin.PUT("/members/:id", h.Members.Update)
		admin.PATCH("/members/:id/status", h.Members.UpdateStatus)
		admin.DELETE("/members/:id", h.Members.Delete)

		admin.GET("/plans", h.Plans.List)
		admin.POST("/plans", h.Plans.Create)
		admin.PUT("/plans/:id", h.Plans.Update)
		admin.DELETE("/plans/:id", h.Plans.Delete)

		admin.GET("/payments", h.Payments.ListAll)
		admin.PATCH("/payments/:id/status", h.Payments.UpdateStatus)

		admin.GET("/settings", h.Settings.Get)
		admin.PUT("/settings", h.Settings.Update)
		admin.POST("/settings/qr", h.Settings.UploadQR)

		admin.POST("/receipts/scan", h.Receipts.Scan)
	}

	return r
}
