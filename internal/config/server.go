package config

import (
	"RomiioBot/database/postgres"
	conversationHandler "RomiioBot/internal/api/conversation/handler"
	conversationRepository "RomiioBot/internal/api/conversation/repository"
	conversationService "RomiioBot/internal/api/conversation/service"
	"RomiioBot/internal/middleware"
	"RomiioBot/pkg/catalog"
	"RomiioBot/pkg/metrics"
	"RomiioBot/pkg/nlp"
	"RomiioBot/pkg/redis"
	"RomiioBot/pkg/session"
	"RomiioBot/pkg/telemetry"
	"RomiioBot/pkg/utils"
	"RomiioBot/pkg/whatsapp"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultDialTimeout = 5 * time.Second
	telemetryTimeout   = 10 * time.Second
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	cfg             BotConfig
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	handlers        []handler
	redisServer     redis.IRedis
	sessionStore    session.Store
	whatsappClient  whatsapp.IWhatsappSender
	whatsappHandler *conversationHandler.WhatsappHandler
	metrics         *metrics.Metrics
	telemetry       telemetry.ILogger
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.sessionStore == nil {
		server.sessionStore = session.NewMemoryStore(session.Options{TTL: server.cfg.SessionTTL})
	}
	if server.metrics == nil {
		server.metrics = metrics.NewMetrics()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, middleware.Config{AppEnv: server.cfg.AppEnv})
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithConfig(cfg BotConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New(s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithSessionStore picks the session backend named by SESSION_STORE.
func WithSessionStore() ServerOption {
	return func(s *Server) error {
		opts := session.Options{TTL: s.cfg.SessionTTL}

		if s.cfg.SessionStore != SessionStoreRedis {
			s.sessionStore = session.NewMemoryStore(opts)
			return nil
		}

		if s.redisServer == nil {
			s.redisServer = redis.New()
		}
		ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
		defer cancel()
		if err := s.redisServer.Ping(ctx); err != nil {
			return fmt.Errorf("redis session store unreachable: %w", err)
		}

		s.sessionStore = session.NewRedisStore(s.redisServer, opts)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Config{
			AppEnv:       s.cfg.AppEnv,
			MessageRate:  rate.Limit(s.cfg.MessageRate),
			MessageBurst: s.cfg.MessageBurst,
		})
		return nil
	}
}

func WithWhatsappClient(ctx context.Context) ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New(ctx, s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

func WithTelemetry(t telemetry.ILogger) ServerOption {
	return func(s *Server) error {
		s.telemetry = t
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	if s.telemetry == nil {
		s.telemetry = telemetry.NewWebhookLogger(s.log, s.cfg.TelemetryURL, telemetryTimeout)
	}

	// Conversation Domain
	engine := conversationService.NewEngine(nlp.New(), conversationService.NewRenderer(catalog.Business), s.utils.NewULIDFromTimestamp)

	var opts []conversationService.Option
	if s.db != nil {
		opts = append(opts, conversationService.WithBookingRepository(conversationRepository.New(s.db, s.log)))
	}
	conversationServices := conversationService.NewConversationService(s.log, s.sessionStore, engine, s.telemetry, s.metrics, opts...)
	conversationHandlers := conversationHandler.New(s.log, s.validator, s.middleware, conversationServices)

	if s.whatsappClient != nil {
		s.whatsappHandler = conversationHandler.NewWhatsappHandler(s.log, s.middleware, conversationServices, s.whatsappClient, s.metrics)
		s.whatsappHandler.Start()
	}

	s.setupHealthCheck()
	s.handlers = append(s.handlers, conversationHandlers)
}

// ConnectWhatsapp blocks until the device is paired and online.
func (s *Server) ConnectWhatsapp(ctx context.Context) error {
	if s.whatsappClient == nil {
		return errors.New("whatsapp client is not configured")
	}
	return s.whatsappClient.Connect(ctx, s.cfg.PairTimeout)
}

func (s *Server) Run() error {
	s.mountHandlers()

	port := s.cfg.AppPort
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops intake first, then drains in-flight messages before closing
// the stores they write to.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.whatsappClient != nil {
		if err := s.whatsappClient.Disconnect(); err != nil {
			errs = append(errs, fmt.Errorf("whatsapp disconnect: %w", err))
		}
	}
	if s.whatsappHandler != nil {
		if err := s.whatsappHandler.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain messages: %w", err))
		}
	}
	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if s.telemetry != nil {
		if err := s.telemetry.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry flush: %w", err))
		}
	}
	if err := s.sessionStore.Close(); err != nil {
		errs = append(errs, fmt.Errorf("session store close: %w", err))
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *Server) mountHandlers() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(whatsapp.LiveMessage)
	})

	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		connected := s.whatsappClient != nil && s.whatsappClient.IsConnected()
		return ctx.JSON(fiber.Map{
			"status":             "ok",
			"whatsapp_connected": connected,
		})
	})

	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
}
