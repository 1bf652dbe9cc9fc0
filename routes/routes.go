package routes

import (
	"context"
	"net/http"
	"time"

	"clothing-store/controllers"
	"clothing-store/libs"
	"clothing-store/metrics"
	"clothing-store/middleware"
	"clothing-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Cart         *controllers.CartController
	Wishlist     *controllers.WishlistController
	Product      *controllers.ProductController
	Payment      *controllers.PaymentController
	Banner       *controllers.BannerController
	Announcement *controllers.AnnouncementController
	User         *controllers.UserController
	Upload       *controllers.UploadController
}

type Options struct {
	Tokens          *utils.TokenManager
	AdminKey        string
	Limiter         middleware.WindowCounter
	SignupLimit     int
	LoginLimit      int
	RateLimitWindow time.Duration
	Captcha         libs.CaptchaVerifier
	CaptchaEnabled  bool
	Ping            func(ctx context.Context) error
	Log             logrus.FieldLogger
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, opts Options) {
	controllers.RegisterValidatorTags()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", health(opts.Ping))

	auth := middleware.AuthMiddleware(opts.Tokens)
	adminKey := middleware.AdminKeyMiddleware(opts.AdminKey)
	captcha := middleware.Captcha(opts.Captcha, opts.CaptchaEnabled, opts.Log)

	api := router.Group("/api")

	api.POST("/signup",
		middleware.RateLimit(opts.Limiter, "signup", opts.SignupLimit, opts.RateLimitWindow, opts.Log),
		middleware.Honeypot(), captcha, ctrl.Auth.Signup)
	api.POST("/login",
		middleware.RateLimit(opts.Limiter, "login", opts.LoginLimit, opts.RateLimitWindow, opts.Log),
		middleware.Honeypot(), captcha, ctrl.Auth.Login)
	api.POST("/refresh", ctrl.Auth.Refresh)
	api.POST("/logout", ctrl.Auth.Logout)
	api.POST("/forgot-password", ctrl.Auth.ForgotPassword)
	api.POST("/reset-password/:token", ctrl.Auth.ResetPassword)

	user := api.Group("/user", auth)
	{
		user.GET("/profile", ctrl.Auth.GetProfile)
		user.PUT("/profile", ctrl.Auth.UpdateProfile)
		user.PUT("/change-password", ctrl.Auth.ChangePassword)
	}

	cart := api.Group("/cart", auth)
	{
		cart.GET("", ctrl.Cart.GetCart)
		cart.POST("/add", ctrl.Cart.Add)
		cart.POST("/remove", ctrl.Cart.Remove)
		cart.POST("/clear", ctrl.Cart.Clear)
		cart.POST("/update-quantity", ctrl.Cart.UpdateQuantity)
	}

	wishlist := api.Group("/wishlist", auth)
	{
		wishlist.GET("", ctrl.Wishlist.List)
		wishlist.POST("/toggle", ctrl.Wishlist.Toggle)
		wishlist.GET("/:productId", ctrl.Wishlist.Status)
	}

	products := api.Group("/products")
	{
		products.GET("", ctrl.Product.List)
		products.GET("/gallery-products", ctrl.Product.Gallery)
		products.GET("/new-arrivals", ctrl.Product.NewArrivals)
		products.GET("/new-arrivalsPage", ctrl.Product.NewArrivalsPage)
		products.GET("/categories", ctrl.Product.Categories)
		products.GET("/productsDetail", ctrl.Product.DetailByQuery)
		products.GET("/:id", ctrl.Product.Detail)
		products.POST("/:id/reviews", auth, ctrl.Product.AddReview)

		products.POST("", adminKey, ctrl.Product.Create)
		products.PUT("/:id", adminKey, ctrl.Product.Update)
		products.DELETE("/:id", adminKey, ctrl.Product.Delete)
	}

	banner := api.Group("/banner")
	{
		banner.GET("/active", ctrl.Banner.Active)
		banner.GET("/banners", ctrl.Banner.All)

		admin := banner.Group("/admin", adminKey)
		admin.POST("", ctrl.Banner.Create)
		admin.PUT("/:id", ctrl.Banner.Update)
		admin.DELETE("/:id", ctrl.Banner.Delete)
		admin.PATCH("/:id/toggle", ctrl.Banner.Toggle)
	}

	announcements := api.Group("/announcements")
	{
		announcements.GET("", ctrl.Announcement.List)
		announcements.POST("", adminKey, ctrl.Announcement.Create)
		announcements.DELETE("/:id", adminKey, ctrl.Announcement.Delete)
	}

	api.POST("/upload", middleware.AdminOrBearer(opts.AdminKey, opts.Tokens), ctrl.Upload.Upload)
	api.GET("/users", adminKey, ctrl.User.List)

	payment := api.Group("/payment")
	{
		payment.POST("/create-order", ctrl.Payment.CreateOrder)
		payment.POST("/verify-payment", ctrl.Payment.VerifyPayment)
		payment.POST("/create-cod-order", ctrl.Payment.CreateCODOrder)
		payment.GET("/orders", middleware.OptionalAuth(opts.Tokens), ctrl.Payment.OrdersByEmail)
		payment.GET("/all-orders", adminKey, ctrl.Payment.AllOrders)
		payment.GET("/first-order-status", auth, ctrl.Payment.FirstOrderStatus)
		payment.POST("/validate-promo", auth, ctrl.Payment.ValidatePromo)
	}
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
