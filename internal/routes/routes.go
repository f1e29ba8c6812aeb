package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "procurement-dashboard-backend/internal/handlers"
	"procurement-dashboard-backend/internal/repository"
	"procurement-dashboard-backend/internal/services/procurement"
	"procurement-dashboard-backend/internal/services/upload"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	requestRepo := repository.NewRequestRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	procurementService := procurement.NewService(requestRepo, quoteRepo, supplierRepo)
	uploadService := upload.NewService(uploadRepo)

	procurementHandler := handler.NewProcurementHandler(procurementService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Purchase request routes
	requests := api.Group("/requests")
	requests.POST("", procurementHandler.CreateRequest)
	requests.GET("", procurementHandler.ListRequests)
	requests.GET("/:id", procurementHandler.GetRequest)
	requests.POST("/:id/quotes", procurementHandler.AddQuote)
	requests.GET("/:id/quotes", procurementHandler.CompareQuotes)
	requests.POST("/:id/approve", procurementHandler.ApproveRequest)
	requests.POST("/:id/reject", procurementHandler.RejectRequest)
	requests.GET("/:id/approvals", procurementHandler.ApprovalHistory)

	// Quote-level routes
	quotes := api.Group("/quotes")
	quotes.POST("/:id/select", procurementHandler.SelectQuote)

	// Supplier master data
	suppliers := api.Group("/suppliers")
	suppliers.POST("", procurementHandler.CreateSupplier)
	suppliers.GET("", procurementHandler.ListSuppliers)

	// Bulk upload routes
	uploads := api.Group("/uploads")
	uploads.POST("", uploadHandler.Upload)
	uploads.GET("/:batchId", uploadHandler.GetBatch)
	uploads.GET("/:batchId/rows", uploadHandler.ListRows)
	uploads.POST("/:batchId/submit", uploadHandler.Submit)

	// Order tracking routes
	orders := api.Group("/orders")
	orders.GET("", procurementHandler.ListOrders)
	orders.POST("/:id/status", procurementHandler.UpdateOrderStatus)

	// Reports
	api.GET("/reports/summary", procurementHandler.ReportSummary)
}
