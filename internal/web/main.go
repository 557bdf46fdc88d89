package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/auth"
	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/config"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/controller/rbac"
	fiberlogger "github.com/GoEduAdmin/GoEduAdmin/internal/logger/adapter/fiber"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/handler/account"
	adminmenu "github.com/GoEduAdmin/GoEduAdmin/internal/web/handler/admin/menu"
	adminpermission "github.com/GoEduAdmin/GoEduAdmin/internal/web/handler/admin/permission"
	adminrole "github.com/GoEduAdmin/GoEduAdmin/internal/web/handler/admin/role"
	"github.com/GoEduAdmin/GoEduAdmin/internal/web/handler/login"
)

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	alive atomic.Bool
	db    *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoEduAdmin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// access log
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: "/checkalive",
	}))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	// stores and domain services
	roles := rbac.NewRoleStore(db)
	permissions := rbac.NewPermissionStore(db)
	menus := rbac.NewMenuStore(db)
	userRoles := rbac.NewUserRoleStore(db)
	rolePermissions := rbac.NewRolePermissionStore(db)

	resolver := authz.NewResolver(userRoles, permissions)
	admin := authz.NewAdministrator(roles, permissions, userRoles, rolePermissions)

	issuer, err := auth.NewTokenIssuer(cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token issuer")
	}

	// bearer token middleware (before handlers)
	app.Use(AuthMiddleware(issuer))

	// init handlers (they register their own routes with authorization gates)
	login.Handler.Init(app, cfg, db, resolver, issuer)
	account.Handler.Init(app, cfg, db, resolver, menus, permissions)
	adminrole.Handler.Init(app, cfg, db, admin, roles, resolver)
	adminpermission.Handler.Init(app, cfg, db, permissions, resolver)
	adminmenu.Handler.Init(app, cfg, db, menus, permissions, resolver)

	// liveness probe for load balancers
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	return service
}
