package http

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/opsview/dashboard-service/internal/archive"
	"github.com/opsview/dashboard-service/internal/auth"
	"github.com/opsview/dashboard-service/internal/brokerage"
	"github.com/opsview/dashboard-service/internal/cards"
	"github.com/opsview/dashboard-service/internal/config"
	"github.com/opsview/dashboard-service/internal/kb"
	"github.com/opsview/dashboard-service/internal/repo"
	"github.com/opsview/dashboard-service/internal/service"
	"github.com/opsview/dashboard-service/internal/tracker"
)

func Router(pool *pgxpool.Pool, cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Binder = StrictJSONBinder{}
	e.HTTPErrorHandler = DefaultHTTPErrorHandler

	if cfg.LocalDev {
		// The dev frontend runs on its own port and sends the session
		// cookie cross-origin.
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
			AllowCredentials: true,
		}))
	}

	if cfg.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	pages := auth.DefaultPages()
	if cfg.PolicyFile != "" {
		loaded, err := auth.LoadPages(cfg.PolicyFile)
		if err != nil {
			log.Printf("policy: %v (falling back to built-in table)", err)
		} else {
			pages = loaded
		}
	}
	policy := auth.NewPolicy(cfg.AdminEmails, pages)
	codec := auth.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL, auth.RealClock{})
	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	gate := NewGate(codec, policy, cfg.AllowedEmailDomain)

	broker := brokerage.NewClient(cfg.BrokerageAPIKey, cfg.TransactionAPIURL, cfg.ChecklistAPIURL, cfg.VaultAPIURL)
	collector := archive.NewCollector(broker)
	trackerClient := tracker.NewClient(cfg.TrackerBaseURL, cfg.TrackerToken, cfg.AllowedEmailDomain)

	var kbClient *kb.Client
	if cfg.KBSubdomain != "" && cfg.KBEmail != "" && cfg.KBAPIToken != "" {
		kbClient = kb.NewClient(cfg.KBSubdomain, cfg.KBEmail, cfg.KBAPIToken)
	}
	var cardsClient *cards.Client
	if cfg.CardsBaseURL != "" && cfg.CardsAPIKey != "" {
		cardsClient = cards.NewClient(cfg.CardsBaseURL, cfg.CardsAPIKey)
	}

	store := repo.NewStore(pool)
	svc := service.New(store, service.RealClock{})

	api := e.Group("/api")
	api.GET("/healthz", Healthz)
	api.GET("/readyz", Readyz(pool))

	authGroup := api.Group("/auth")
	authGroup.POST("/login", Login(verifier, codec, cfg))
	authGroup.POST("/logout", Logout(cfg))
	authGroup.GET("/me", Me(), gate.RequireSession)
	authGroup.GET("/pages", Pages(policy), gate.RequireSession)

	files := api.Group("/files", gate.RequireSession)
	files.POST("/download-transaction", DownloadTransaction(collector, cfg))
	files.POST("/download-agent", DownloadAgent(collector, broker, cfg))

	automations := api.Group("/automations", gate.RequireSession, gate.RequirePage("/automations"), gate.RequireAdmin)
	automations.GET("", ListAutomations(svc))
	automations.POST("", CreateAutomation(svc))
	automations.PUT("/:id", UpdateAutomation(svc))

	api.GET("/metrics", Metrics(svc), gate.RequireSession, gate.RequirePage("/metrics"), gate.RequireAdmin)

	trackerGroup := api.Group("/tracker", gate.RequireSession)
	trackerGroup.GET("/current-sprint", TrackerSprint(trackerClient))
	trackerGroup.GET("/issues", TrackerIssues(trackerClient))
	trackerGroup.POST("/issues", TrackerCreateIssue(trackerClient))
	trackerGroup.GET("/issues/:id", TrackerIssue(trackerClient))
	trackerGroup.GET("/projects/:projectId/custom-fields/:fieldName", TrackerFieldValues(trackerClient))
	trackerGroup.Any("/*", TrackerProxy(trackerClient))

	api.POST("/kb/search", KBSearch(kbClient), gate.RequireSession)
	api.POST("/cards/inspect", CardInspect(cardsClient), gate.RequireSession)

	return e
}
