package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tripwise/cmd/fx/account_fx"
	"tripwise/cmd/fx/ai_fx"
	"tripwise/cmd/fx/config_fx"
	"tripwise/cmd/fx/controllers_fx"
	"tripwise/cmd/fx/credit_fx"
	"tripwise/cmd/fx/db_fx"
	"tripwise/cmd/fx/enrichment_fx"
	"tripwise/cmd/fx/memcache_fx"
	"tripwise/cmd/fx/trip_plan_fx"
	"tripwise/internal/api/controllers"
	"tripwise/internal/config"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		credit_fx.Module,
		account_fx.Module,
		ai_fx.Module,
		enrichment_fx.Module,
		trip_plan_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, server config.ServerConfig, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	accountController *controllers.AccountController,
	creditController *controllers.CreditController,
	tripPlanController *controllers.TripPlanController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	limiter := middleware.NewRateLimiter(cfg.Server.GenerateRatePerMinute, cfg.Server.GenerateBurst)
	RegisterRoutes(r, limiter, accountController, creditController, tripPlanController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	limiter *middleware.RateLimiter,
	accountController *controllers.AccountController,
	creditController *controllers.CreditController,
	tripPlanController *controllers.TripPlanController) {

	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)
	accountsGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	creditsGroup := r.Group("/credits", middleware.JWTAuthMiddleware())
	creditsGroup.GET("/balance", creditController.Balance)
	creditsGroup.GET("/history", creditController.History)
	creditsGroup.POST("/top-up", middleware.RoleMiddleware("admin"), creditController.TopUp)

	plansGroup := r.Group("/trip-plans", middleware.JWTAuthMiddleware())
	plansGroup.POST("", limiter.Limit(), tripPlanController.GenerateTripPlan)
	plansGroup.GET("", tripPlanController.ListTripPlans)
	plansGroup.GET("/:planId", tripPlanController.GetTripPlan)
	plansGroup.GET("/:planId/calendar.ics", tripPlanController.ExportCalendar)
}
