// Package bootstrap builds the application graph from configuration and owns
// its shutdown.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"clothing-store/config"
	"clothing-store/controllers"
	"clothing-store/libs"
	"clothing-store/middleware"
	"clothing-store/repositories"
	"clothing-store/repositories/memory"
	mongostore "clothing-store/repositories/mongo"
	"clothing-store/repositories/postgres"
	"clothing-store/routes"
	"clothing-store/services"
	"clothing-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type App struct {
	Config   *config.Config
	Log      logrus.FieldLogger
	Router   *gin.Engine
	Store    repositories.Store
	Notifier *services.Notifier

	redis     *redis.Client
	publisher libs.EventPublisher
}

type dependencies struct {
	store     repositories.Store
	mailer    libs.Mailer
	gateway   libs.PaymentGateway
	captcha   libs.CaptchaVerifier
	uploader  libs.Uploader
	publisher libs.EventPublisher
}

// Option replaces one externally backed dependency, mostly for tests.
type Option func(*dependencies)

func WithStore(store repositories.Store) Option {
	return func(d *dependencies) { d.store = store }
}

func WithMailer(mailer libs.Mailer) Option {
	return func(d *dependencies) { d.mailer = mailer }
}

func WithGateway(gateway libs.PaymentGateway) Option {
	return func(d *dependencies) { d.gateway = gateway }
}

func WithCaptcha(captcha libs.CaptchaVerifier) Option {
	return func(d *dependencies) { d.captcha = captcha }
}

func WithUploader(uploader libs.Uploader) Option {
	return func(d *dependencies) { d.uploader = uploader }
}

func WithPublisher(publisher libs.EventPublisher) Option {
	return func(d *dependencies) { d.publisher = publisher }
}

func New(ctx context.Context, cfg *config.Config, log *logrus.Logger, opts ...Option) (*App, error) {
	var deps dependencies
	for _, opt := range opts {
		opt(&deps)
	}

	app := &App{Config: cfg, Log: log}

	store := deps.store
	if store == nil {
		var err error
		if store, err = openStore(ctx, cfg, log); err != nil {
			return nil, err
		}
	}
	app.Store = store

	app.redis = config.ConnectRedis(ctx, cfg, log)
	var (
		cache   libs.Cache = libs.NoopCache{}
		limiter middleware.WindowCounter
	)
	if app.redis != nil {
		cache = libs.NewRedisCache(app.redis)
		limiter = middleware.NewRedisCounter(app.redis)
	} else {
		limiter = middleware.NewMemoryCounter()
	}

	mailer := deps.mailer
	if mailer == nil {
		mailer = newMailer(cfg, log)
	}
	app.Notifier = services.NewNotifier(mailer, store, log, services.NotifierOptions{
		Workers:       cfg.NotifyWorkers,
		QueueSize:     cfg.NotifyQueueSize,
		RatePerSec:    cfg.MailRatePerSec,
		MaxAttempts:   cfg.NotifyMaxAttempts,
		RetrySchedule: cfg.NotifyRetrySchedule,
	})
	if err := app.Notifier.Start(); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	gateway := deps.gateway
	if gateway == nil {
		gateway = libs.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	captcha := deps.captcha
	if captcha == nil {
		captcha = libs.NewSiteVerifier(cfg.CaptchaSecret, cfg.CaptchaVerifyURL, cfg.CaptchaTimeout)
	}
	if !cfg.CaptchaEnabled() {
		log.Warn("CAPTCHA_SECRET not set, captcha verification disabled")
	}

	uploader := deps.uploader
	if uploader == nil {
		uploader = newUploader(cfg, log)
	}

	app.publisher = deps.publisher
	if app.publisher == nil {
		app.publisher = newPublisher(cfg, log)
	}

	templates := libs.MailTemplates{StoreName: cfg.StoreName, FrontendURL: cfg.FrontendURL}
	hasher := utils.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
	tokens := utils.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessExpiry, cfg.RefreshExpiry)

	authService := services.NewAuthService(store, hasher, tokens, app.Notifier, templates, log)
	cartService := services.NewCartService(store, store)
	wishlistService := services.NewWishlistService(store, store)
	catalogService := services.NewCatalogService(store, store, cache, log)
	orderService := services.NewOrderService(store, gateway, app.Notifier, templates, app.publisher, services.OrderOptions{
		AdminEmail:   cfg.AdminNotifyEmail,
		PromoCode:    cfg.PromoCode,
		PromoPercent: cfg.PromoPercent,
		OrderTopic:   cfg.KafkaOrderTopic,
	}, log)
	uploadService := services.NewUploadService(uploader, cfg.MaxUploadSize, log)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	routes.SetupRoutes(router, routes.Controllers{
		Auth:         controllers.NewAuthController(authService, cfg.RefreshExpiry, cfg.IsProduction(), log),
		Cart:         controllers.NewCartController(cartService, log),
		Wishlist:     controllers.NewWishlistController(wishlistService, log),
		Product:      controllers.NewProductController(catalogService, log),
		Payment:      controllers.NewPaymentController(orderService, cfg.AdminAPIKey, cfg.RazorpayKeyID, log),
		Banner:       controllers.NewBannerController(services.NewBannerService(store), log),
		Announcement: controllers.NewAnnouncementController(services.NewAnnouncementService(store), log),
		User:         controllers.NewUserController(services.NewUserService(store), log),
		Upload:       controllers.NewUploadController(uploadService, cfg.MaxUploadSize, log),
	}, routes.Options{
		Tokens:          tokens,
		AdminKey:        cfg.AdminAPIKey,
		Limiter:         limiter,
		SignupLimit:     cfg.RateLimitSignup,
		LoginLimit:      cfg.RateLimitLogin,
		RateLimitWindow: cfg.RateLimitWindow,
		Captcha:         captcha,
		CaptchaEnabled:  cfg.CaptchaEnabled(),
		Ping:            store.Ping,
		Log:             log,
	})
	app.Router = router

	return app, nil
}

// Close drains pending mail first and closes the database last.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Notifier != nil {
		if err := a.Notifier.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("notifier: %w", err))
		}
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repositories.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return memory.New(), nil
	case config.DriverMongo:
		client, db, err := config.ConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		store, err := mongostore.New(ctx, client, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("prepare mongo store: %w", err)
		}
		return store, nil
	default:
		pool, err := config.ConnectPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return postgres.New(pool), nil
	}
}

func newMailer(cfg *config.Config, log logrus.FieldLogger) libs.Mailer {
	if !cfg.SMTPConfigured() {
		log.Warn("SMTP not configured, emails will only be logged")
		return libs.LogMailer{Log: log}
	}
	mailer, err := libs.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if err != nil {
		log.WithError(err).Warn("SMTP mailer unavailable, emails will only be logged")
		return libs.LogMailer{Log: log}
	}
	return mailer
}

func newUploader(cfg *config.Config, log logrus.FieldLogger) libs.Uploader {
	if !cfg.CloudinaryConfigured() {
		return libs.DataURLUploader{}
	}
	uploader, err := libs.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryURL)
	if err != nil {
		log.WithError(err).Warn("Cloudinary unavailable, uploads fall back to data URLs")
		return libs.DataURLUploader{}
	}
	return uploader
}

func newPublisher(cfg *config.Config, log logrus.FieldLogger) libs.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return libs.NoopPublisher{}
	}
	publisher, err := libs.NewKafkaPublisher(cfg.KafkaBrokers)
	if err != nil {
		log.WithError(err).Warn("Kafka unavailable, order events disabled")
		return libs.NoopPublisher{}
	}
	return publisher
}
