package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/controllers"
	"github.com/nalaku/printshop-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	customerCtrl := controllers.NewCustomerController(db)
	bahanCtrl := controllers.NewBahanController(db)
	employeeCtrl := controllers.NewEmployeeController(db)
	expenseCtrl := controllers.NewExpenseController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)
	reportCtrl := controllers.NewReportController(db)
	printCtrl := controllers.NewPrintController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// BAHAN (katalog material)
	auth.GET("/bahan", bahanCtrl.GetAllBahan)
	auth.POST("/bahan", bahanCtrl.CreateBahan)
	auth.GET("/bahan/:bahan_id", bahanCtrl.GetBahanByID)
	auth.PATCH("/bahan/:bahan_id", bahanCtrl.UpdateBahan)
	auth.DELETE("/bahan/:bahan_id", bahanCtrl.DeleteBahan)

	// EMPLOYEES
	auth.GET("/employees", employeeCtrl.GetAllEmployees)
	auth.POST("/employees", employeeCtrl.CreateEmployee)
	auth.GET("/employees/:employee_id", employeeCtrl.GetEmployeeByID)
	auth.PATCH("/employees/:employee_id", employeeCtrl.UpdateEmployee)
	auth.DELETE("/employees/:employee_id", employeeCtrl.DeleteEmployee)

	// EXPENSES
	auth.GET("/expenses", expenseCtrl.GetAllExpenses)
	auth.POST("/expenses", expenseCtrl.CreateExpense)
	auth.GET("/expenses/:expense_id", expenseCtrl.GetExpenseByID)
	auth.PATCH("/expenses/:expense_id", expenseCtrl.UpdateExpense)
	auth.DELETE("/expenses/:expense_id", expenseCtrl.DeleteExpense)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.GET("/orders/:order_id/total", orderCtrl.GetOrderTotal)
	auth.POST("/orders/:order_id/process", orderCtrl.ProcessOrder)
	auth.POST("/orders/:order_id/release", orderCtrl.ReleaseJob)

	// PRODUCTION item-level
	auth.PATCH("/order-items/:item_id/status", orderCtrl.UpdateItemStatus)

	// PAYMENTS
	auth.GET("/payments", paymentCtrl.GetAllPayments)
	auth.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)
	auth.GET("/orders/:order_id/payments", paymentCtrl.GetPaymentsByOrder)
	auth.DELETE("/payments/:payment_id", paymentCtrl.DeletePayment)

	paymentGroup := auth.Group("/payments")
	paymentGroup.Use(middlewares.PaymentRateLimiter(), middlewares.LogPaymentRequest())
	{
		paymentGroup.POST("", paymentCtrl.CreatePayment)
	}

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.POST("/notifications", notificationCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// DASHBOARD & FINANCE
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/finance/summary", adminCtrl.GetFinanceSummary)
	auth.GET("/finance/cashflow", adminCtrl.GetCashflow)
	auth.GET("/finance/receivables", adminCtrl.GetReceivables)

	// REPORTS
	auth.GET("/reports/sales", reportCtrl.GetSalesReport)
	auth.GET("/reports/expenses", reportCtrl.GetExpenseReport)
	auth.GET("/reports/top-customers", reportCtrl.GetTopCustomers)
	auth.GET("/reports/best-materials", reportCtrl.GetBestMaterials)
	auth.GET("/reports/:kind/export", reportCtrl.ExportReport)

	// PRINT (nota & SPK) dengan middleware logger
	printGroup := auth.Group("/orders")
	printGroup.Use(middlewares.PrintLoggerMiddleware())
	{
		printGroup.GET("/:order_id/nota.pdf", printCtrl.PrintNota)
		printGroup.GET("/:order_id/spk.pdf", printCtrl.PrintSPK)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware(), middlewares.RoleCheck())
	{
		wsGroup.GET("/:role", controllers.EventsHandler)
	}

	return r
}
