package routes

import (
	"net/http"

	"bookify/auth"
	"bookify/bookings"
	"bookify/geo"
	"bookify/hosts"
	"bookify/listings"
	"bookify/messages"
	"bookify/middleware"
	"bookify/ratelim"
	"bookify/reports"
	"bookify/reviews"
	"bookify/wallet"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/listingpic/*filepath", http.Dir("static/listingpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.RegisterHandler))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.LoginHandler))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutHandler))
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(auth.RefreshTokenHandler))
}

func AddHostRoutes(router *httprouter.Router) {
	router.PUT("/api/hosts/me", middleware.Authenticate(hosts.UpsertHost))
	router.GET("/api/hosts/:uid", hosts.GetHost)
}

func AddListingRoutes(router *httprouter.Router) {
	router.GET("/api/listings", middleware.OptionalAuth(listings.ListListings))
	router.GET("/api/listings/:id", middleware.OptionalAuth(listings.GetListing))
	router.POST("/api/listings", middleware.Authenticate(listings.SaveDraft))
	router.PUT("/api/listings/:id", middleware.Authenticate(listings.UpdateDraft))
	router.POST("/api/listings/:id/publish", middleware.Authenticate(listings.PublishListing))
	router.POST("/api/listings/:id/photos", middleware.Authenticate(listings.UploadPhoto))
	router.DELETE("/api/listings/:id", middleware.Authenticate(listings.DeleteListing))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", middleware.Authenticate(bookings.CreateBooking))
	router.GET("/api/bookings", middleware.Authenticate(bookings.ListBookings))
	router.PUT("/api/bookings/:id/status", middleware.Authenticate(bookings.UpdateBookingStatus))
	router.PUT("/api/bookings/:id/payment", middleware.Authenticate(bookings.UpdatePaymentStatus))
	router.POST("/api/bookings/:id/cancel", middleware.Authenticate(bookings.CancelBooking))
	router.GET("/api/bookings/:id/confirmation.pdf", middleware.Authenticate(bookings.ConfirmationPDF))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.POST("/api/reviews", middleware.Authenticate(reviews.CreateReview))
	router.GET("/api/listings/:id/reviews", reviews.GetListingReviews)
}

func AddWalletRoutes(router *httprouter.Router) {
	router.POST("/api/wallets/:walletId/txns", middleware.RequireRole("admin", wallet.RecordTxn))
	router.GET("/api/wallets/:walletId/txns", middleware.Authenticate(wallet.ListTxns))
}

func AddMessageRoutes(router *httprouter.Router, hub *messages.Hub) {
	router.POST("/api/messages", middleware.Authenticate(messages.SendMessage))
	router.GET("/api/conversations", middleware.Authenticate(messages.GetConversations))
	router.GET("/api/messages/:counterpartId", middleware.Authenticate(messages.GetMessagesWith))
	// The websocket handler validates the token itself; browsers cannot set
	// headers on websocket dials.
	router.GET("/ws/chat/:room", messages.WebSocketHandler(hub))
}

func AddGeoRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/geocode/reverse", rateLimiter.Limit(geo.ReverseGeocode))
}

// Admin report endpoints. Every one is role gated; exports run the same
// filter pipeline as the dashboard.
func AddReportRoutes(router *httprouter.Router) {
	router.GET("/api/admin/reports/bookings", middleware.RequireRole("admin", reports.BookingsReport))
	router.GET("/api/admin/reports/bookings/export.csv", middleware.RequireRole("admin", reports.BookingsReportCSV))
	router.GET("/api/admin/reports/bookings/export.pdf", middleware.RequireRole("admin", reports.BookingsReportPDF))
	router.GET("/api/admin/reports/bookings/print", middleware.RequireRole("admin", reports.BookingsReportPrint))
	router.GET("/api/admin/reports/listings", middleware.RequireRole("admin", reports.ListingsReport))
	router.GET("/api/admin/reports/listings/export.csv", middleware.RequireRole("admin", reports.ListingsReportCSV))
	router.GET("/api/admin/reports/listings/export.pdf", middleware.RequireRole("admin", reports.ListingsReportPDF))
	router.GET("/api/admin/reports/listings/print", middleware.RequireRole("admin", reports.ListingsReportPrint))
}
