package main

import (
	"context"
	"crypto/rand"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/vegruit/storefront/internal/auth"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/cart"
	"github.com/vegruit/storefront/internal/catalog"
	"github.com/vegruit/storefront/internal/config"
	"github.com/vegruit/storefront/internal/dashboard"
	"github.com/vegruit/storefront/internal/feedback"
	"github.com/vegruit/storefront/internal/infrastructure/database"
	"github.com/vegruit/storefront/internal/order"
	"github.com/vegruit/storefront/internal/poll"
	"github.com/vegruit/storefront/internal/ratelim"
	"github.com/vegruit/storefront/internal/review"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/web"
)

const purgeInterval = time.Hour

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secret := sessionSecret(cfg)
	store, closeStore, err := openStore(ctx, cfg, secret)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer closeStore()

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)

	hub := dashboard.NewHub(ctx, client, cfg.DashboardRefresh)
	tracker := review.NewTracker()
	testimonials := feedback.NewTestimonials(client, cfg.TestimonialRefresh)
	testimonials.Start(ctx)

	hooks := sessionHooks(hub, tracker)

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n"}))
	setupCORS(app, cfg.AllowOrigins)
	app.Use(session.Middleware(session.Options{
		Store:  store,
		Secret: secret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
		Hooks:  hooks,
	}))

	guard := order.NewInFlight()

	authHandler := auth.NewHandler(auth.NewService(client), ratelim.New(cfg.AuthRate).Limit())
	authHandler.RegisterPublicRoutes(app)

	catalogHandler := catalog.NewHandler(catalog.NewService(client))
	catalogHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterProtectedRoutes(app)

	feedback.NewHandler(feedback.NewService(client, testimonials)).RegisterPublicRoutes(app)

	orderHandler := order.NewHandler(order.NewService(client, guard))
	orderHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	cart.NewHandler(cart.NewService(client)).RegisterProtectedRoutes(app)
	review.NewHandler(review.NewService(client, tracker, guard)).RegisterProtectedRoutes(app)
	dashboard.NewHandler(dashboard.NewService(client, hub)).RegisterProtectedRoutes(app)

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	hub.StopAll()
	testimonials.Stop()
}

// sessionHooks keeps per-session background state bound to the session's
// token: a new login drops the previous user's refresher and review set.
func sessionHooks(hub *dashboard.Hub, tracker *review.Tracker) session.Hooks {
	return session.Hooks{
		Established: func(namespace string, s session.Session) {
			log.Infof("session %s: signed in as %s", namespace, s.UserType)
			hub.Retain(namespace, s.Token)
			tracker.Retain(namespace, s.Token)
		},
		Cleared: func(namespace string) {
			hub.Stop(namespace)
			tracker.Forget(namespace)
		},
	}
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: origins != "*",
	}))
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return web.Fail(c, code, err.Error())
}

// sessionSecret signs visitor cookies and seals stored values. Without a
// configured secret every restart logs all visitors out.
func sessionSecret(cfg config.Config) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	log.Warn("VEGRUIT_SESSION_SECRET is not set; using a random secret")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("generate session secret: %v", err)
	}
	return b
}

// openStore picks the configured persistence and seals it. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg config.Config, secret []byte) (session.Persistence, func(), error) {
	switch cfg.SessionStore {
	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg := session.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		purge := poll.New("session purge", purgeInterval, func(ctx context.Context) {
			n, err := pg.Purge(ctx, time.Now().Add(-cfg.SessionTTL))
			if err != nil {
				log.Warnf("session purge: %v", err)
				return
			}
			if n > 0 {
				log.Infof("session purge: removed %d values", n)
			}
		})
		purge.Start(ctx)
		log.Info("sessions stored in postgres")
		return session.NewSealedStore(pg, secret), func() {
			purge.Stop()
			db.Close()
		}, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		log.Infof("sessions stored in redis at %s", cfg.RedisAddr)
		return session.NewSealedStore(session.NewRedisStore(rdb, cfg.SessionTTL), secret), func() {
			rdb.Close()
		}, nil

	default:
		if cfg.SessionStore != config.StoreMemory {
			log.Warnf("unknown session store %q; using memory", cfg.SessionStore)
		}
		return session.NewSealedStore(session.NewInMemoryStore(), secret), func() {}, nil
	}
}
