package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/billing"
	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/application/pqrs"
	"github.com/jhoicas/colegio-cartera/internal/application/usecase"
	"github.com/jhoicas/colegio-cartera/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StatusUC      *billing.StatusUseCase
	CertificateUC *billing.CertificateUseCase
	PQRSUC        *pqrs.UseCase
	ChatUC        *usecase.ChatUseCase
	ChatTokens    ChatTokenConfig
	Features      config.FeatureConfig
	Branding      dto.BrandingDTO
	Now           func() time.Time
}

// Router registra las rutas de la API. Cada módulo queda detrás de RequireFeature.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/branding", NewBrandingHandler(deps.Branding).Get)

	// Cartera
	carteraHandler := NewCarteraHandler(deps.StatusUC)
	cartera := api.Group("/cartera", RequireFeature(config.FeatureCartera, deps.Features.Cartera))
	cartera.Get("/:documento", carteraHandler.GetStatus)

	// Certificados
	certHandler := NewCertificadoHandler(deps.CertificateUC)
	certs := api.Group("/certificados", RequireFeature(config.FeatureCertificados, deps.Features.Certificados))
	certs.Get("/verificar/:documento/:codigo", certHandler.Verify)
	certs.Get("/:documento", certHandler.Download)

	// PQRS
	pqrsHandler := NewPQRSHandler(deps.PQRSUC)
	pq := api.Group("/pqrs", RequireFeature(config.FeaturePQRS, deps.Features.PQRS))
	pq.Post("/", pqrsHandler.Create)
	pq.Get("/categorias", pqrsHandler.Categories)
	pq.Get("/:radicado", pqrsHandler.GetByRadicado)

	// Asistente (las rutas de mensajes requieren el token de sesión)
	chatHandler := NewChatHandler(deps.ChatUC, deps.ChatTokens, deps.Now)
	chat := api.Group("/chat", RequireFeature(config.FeatureChat, deps.Features.Chat))
	chat.Post("/sessions", chatHandler.StartSession)
	withSession := ChatSessionMiddleware(deps.ChatTokens.Secret)
	chat.Delete("/sessions", withSession, chatHandler.Close)
	chat.Post("/messages", withSession, chatHandler.SendMessage)
	chat.Get("/messages", withSession, chatHandler.History)
	chat.Delete("/messages", withSession, chatHandler.Reset)
}
