package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/colegio-cartera/docs"
	"github.com/jhoicas/colegio-cartera/internal/application/billing"
	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/application/pqrs"
	"github.com/jhoicas/colegio-cartera/internal/application/usecase"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
	infraai "github.com/jhoicas/colegio-cartera/internal/infrastructure/ai"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/colegio-cartera/internal/infrastructure/pdf"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/postgres"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/colegio-cartera/internal/interfaces/http"
	"github.com/jhoicas/colegio-cartera/pkg/config"
	"github.com/jhoicas/colegio-cartera/pkg/logger"
	"github.com/jhoicas/colegio-cartera/pkg/nit"
)

// @title						Colegio Cartera API
// @version					1.0
// @description				Consulta de cartera, paz y salvo, PQRS y asistente virtual del colegio.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Token de sesión del asistente: Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ledger", cfg.Ledger.Driver).
		Str("pqrs", cfg.Petitions.Driver).
		Str("chat", cfg.Chat.Provider).
		Msg("iniciando aplicación")

	loc := cfg.App.Location()
	now := func() time.Time { return time.Now().In(loc) }

	ctx := context.Background()

	// PostgreSQL solo si alguna fuente lo usa.
	var pool *pgxpool.Pool
	if cfg.Ledger.Driver == "postgres" || cfg.Petitions.Driver == "postgres" {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	var ledgerRepo repository.LedgerRepository
	if cfg.Ledger.Driver == "postgres" {
		ledgerRepo = postgres.NewLedgerRepository(pool)
	} else {
		ledgerRepo = excel.NewLedgerRepository(cfg.Ledger.XLSXPath, cfg.Ledger.Sheet)
	}

	var petitionRepo repository.PetitionRepository
	if cfg.Petitions.Driver == "postgres" {
		petitionRepo = postgres.NewPetitionRepository(pool)
	} else {
		petitionRepo = excel.NewPetitionRepository(cfg.Petitions.XLSXPath)
	}

	// ── Cartera y paz y salvo ────────────────────────────────────────────────
	institutionNIT, err := nit.Format(cfg.Institution.NIT)
	if err != nil {
		log.Warn().Err(err).Str("nit", cfg.Institution.NIT).Msg("NIT de la institución inválido; se imprime tal cual")
		institutionNIT = cfg.Institution.NIT
	}

	logo, err := infrapdf.LoadLogo(cfg.Theme.LogoPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Theme.LogoPath).Msg("logo no disponible; el certificado usa encabezado de texto")
		logo = nil
	}
	renderer := infrapdf.NewMarotoCertificateGenerator(
		infrapdf.PaletteFromHex(cfg.Theme.Primary, cfg.Theme.Accent), logo,
	)

	resolver := billing.NewResolver(ledgerRepo)
	statusUC := billing.NewStatusUseCase(resolver, billing.PaymentConfig{
		GatewayURL: cfg.Payment.GatewayURL,
		RefPrefix:  cfg.Payment.RefPrefix,
	}, now, log.Component("cartera"))
	certificateUC := billing.NewCertificateUseCase(resolver, renderer, billing.InstitutionConfig{
		Name:      cfg.Institution.Name,
		Motto:     cfg.Institution.Motto,
		NIT:       institutionNIT,
		City:      cfg.Institution.City,
		Treasurer: cfg.Institution.Treasurer,
		VerifyURL: cfg.Institution.VerifyURL,
	}, now, log.Component("certificados"))

	// ── PQRS ─────────────────────────────────────────────────────────────────
	pqrsUC := pqrs.NewUseCase(petitionRepo, now, log.Component("pqrs"))

	// ── Asistente ────────────────────────────────────────────────────────────
	var llm ports.ChatCompleter
	switch cfg.Chat.Provider {
	case "anthropic":
		llm = infraai.NewAnthropicService(cfg.Chat.AnthropicKey, cfg.Chat.AnthropicModel)
	case "gemini":
		gemini := infraai.NewGeminiService(cfg.Chat.GeminiKey, cfg.Chat.GeminiModel)
		if cfg.Chat.GeminiBaseURL != "" {
			gemini = gemini.WithBaseURL(cfg.Chat.GeminiBaseURL)
		}
		llm = gemini
	default:
		openai := infraai.NewOpenAIService(cfg.Chat.OpenAIKey, cfg.Chat.OpenAIModel)
		if cfg.Chat.OpenAIBaseURL != "" {
			openai = openai.WithBaseURL(cfg.Chat.OpenAIBaseURL)
		}
		llm = openai
	}

	var sessions repository.ChatSessionRepository
	if cfg.Chat.SessionStore == "redis" {
		rdb, err := session.NewRedisClient(ctx, cfg.Chat.RedisAddr, cfg.Chat.RedisPassword, cfg.Chat.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Chat.RedisAddr).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		sessions = session.NewRedisStore(rdb, cfg.Chat.SessionTTL())
	} else {
		sessions = session.NewMemoryStore(cfg.Chat.SessionTTL(), now)
	}

	chatUC := usecase.NewChatUseCase(llm, sessions, usecase.ChatConfig{
		SystemPrompt: cfg.Chat.SystemPrompt,
		Timeout:      cfg.Chat.Timeout(),
		MaxHistory:   cfg.Chat.MaxHistory,
	}, now, log.Component("chat"))

	sessionSecret := cfg.Chat.SessionSecret
	if sessionSecret == "" {
		sessionSecret = uuid.NewString()
		log.Warn().Msg("CHAT_SESSION_SECRET vacío: se generó uno temporal, los tokens no sobreviven un reinicio")
	}

	// ── HTTP ─────────────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Chat.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.Institution.Name + " API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StatusUC:      statusUC,
		CertificateUC: certificateUC,
		PQRSUC:        pqrsUC,
		ChatUC:        chatUC,
		ChatTokens: httpRouter.ChatTokenConfig{
			Secret: sessionSecret,
			Issuer: cfg.Chat.SessionIssuer,
			TTL:    cfg.Chat.SessionTTL(),
		},
		Features: cfg.Features,
		Branding: dto.BrandingDTO{
			InstitutionName: cfg.Institution.Name,
			Motto:           cfg.Institution.Motto,
			LogoURL:         cfg.Theme.LogoURL,
			Theme: dto.ThemeDTO{
				Primary:    cfg.Theme.Primary,
				Accent:     cfg.Theme.Accent,
				Background: cfg.Theme.Background,
			},
			Features:     cfg.Features.Map(),
			ChatProvider: chatUC.Provider(),
		},
		Now: now,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
