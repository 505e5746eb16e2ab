package http

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/finvoice/dashboard/internal/auth"
	"github.com/finvoice/dashboard/internal/cache"
	"github.com/finvoice/dashboard/internal/config"
	"github.com/finvoice/dashboard/internal/http/middleware"
	"github.com/finvoice/dashboard/internal/logger"
	"github.com/finvoice/dashboard/internal/metrics"
	"github.com/finvoice/dashboard/internal/repository"
	"github.com/finvoice/dashboard/internal/service/dashboard"
	"github.com/finvoice/dashboard/internal/service/invoice"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, dbx *sqlx.DB, rds *redis.Client) *Server {
	// repos
	invoicesRepo := repository.NewInvoicesRepository(dbx)
	customersRepo := repository.NewCustomersRepository(dbx)
	revenueRepo := repository.NewRevenueRepository(dbx)
	usersRepo := repository.NewUsersRepository(dbx)

	// redis-backed collaborators
	views := cache.NewViews(rds, cfg.Cache.ViewTTL)
	sessions := auth.NewSessions(rds, cfg.Session.TTL)
	gate := auth.Gate{
		ProtectedPrefix: cfg.Auth.ProtectedPrefix,
		LoginPath:       cfg.Auth.LoginPath,
		HomePath:        cfg.Auth.HomePath,
	}

	// services
	dashSvc := dashboard.New(invoicesRepo, customersRepo, revenueRepo, cfg.Pagination.LatestLimit)
	invoiceSvc := invoice.New(invoicesRepo, views, logger.Log)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// the gate runs before every handler it is attached to
	gateMW := middleware.SessionGate(sessions, gate, cfg.Session.CookieName)

	e.POST(cfg.Auth.LoginPath, loginHandler(usersRepo, sessions, cfg.Session.CookieName, cfg.Session.TTL, cfg.Auth.HomePath), gateMW)
	e.POST("/logout", logoutHandler(sessions, cfg.Session.CookieName, cfg.Auth.LoginPath))

	// routes
	v1 := e.Group("/v1", gateMW)
	v1.GET("/dashboard", overviewHandler(dashSvc))
	v1.GET("/invoices", listInvoicesHandler(invoicesRepo, views, cfg.Pagination.PageSize))
	v1.POST("/invoices", createInvoiceHandler(invoiceSvc))
	v1.GET("/invoices/:id", getInvoiceHandler(dashSvc))
	v1.PUT("/invoices/:id", updateInvoiceHandler(invoiceSvc))
	v1.DELETE("/invoices/:id", deleteInvoiceHandler(invoiceSvc))
	v1.GET("/customers", listCustomersHandler(customersRepo))
	v1.GET("/customers/options", customerOptionsHandler(customersRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
