// Package pqrs contiene la radicación de PQRS / derechos de petición.
package pqrs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

const timestampLayout = "2006-01-02 15:04:05"

// UseCase radica y consulta PQRS.
type UseCase struct {
	repo repository.PetitionRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewUseCase construye el caso de uso. now fija el reloj y su zona horaria.
func NewUseCase(repo repository.PetitionRepository, now func() time.Time, log zerolog.Logger) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{repo: repo, now: now, log: log}
}

// Submit valida la solicitud, genera el radicado y la agrega a la bitácora.
//
// Documento, nombre y asunto son obligatorios; el tipo debe pertenecer al conjunto cerrado.
// Un fallo de la bitácora devuelve domain.ErrSourceUnavailable y no se entrega radicado.
func (uc *UseCase) Submit(ctx context.Context, in dto.CreatePetitionRequest) (*dto.PetitionResponse, error) {
	doc := cartera.NormalizeDocument(in.Documento)
	nombre := strings.TrimSpace(in.Nombre)
	asunto := strings.TrimSpace(in.Asunto)
	if doc == "" || nombre == "" || asunto == "" {
		return nil, fmt.Errorf("%w: documento, nombre y asunto son obligatorios", domain.ErrInvalidInput)
	}
	tipo := entity.PetitionCategory(strings.TrimSpace(in.Tipo))
	if !tipo.Valid() {
		return nil, fmt.Errorf("%w: tipo de solicitud %q no permitido", domain.ErrInvalidInput, in.Tipo)
	}

	now := uc.now()
	p := &entity.Petition{
		ID:        uuid.New().String(),
		FechaHora: now,
		Radicado:  cartera.TrackingCode(doc, now),
		Documento: doc,
		Nombre:    nombre,
		Curso:     strings.TrimSpace(in.Curso),
		Email:     strings.TrimSpace(in.Email),
		Telefono:  strings.TrimSpace(in.Telefono),
		Tipo:      tipo,
		Asunto:    asunto,
		Detalle:   in.Detalle,
		Estado:    entity.PetitionStatusReceived,
	}

	if err := uc.repo.Append(ctx, p); err != nil {
		uc.log.Warn().Err(err).Str("radicado", p.Radicado).Msg("pqrs: no se pudo registrar")
		return nil, sourceErr(err)
	}

	uc.log.Info().Str("radicado", p.Radicado).Str("tipo", string(p.Tipo)).Msg("pqrs radicada")
	return toResponse(p), nil
}

// FindByRadicado devuelve las radicaciones con ese número; domain.ErrNotFound si no hay ninguna.
func (uc *UseCase) FindByRadicado(ctx context.Context, radicado string) ([]*dto.PetitionResponse, error) {
	radicado = strings.ToUpper(strings.TrimSpace(radicado))
	if radicado == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.FindByTrackingCode(ctx, radicado)
	if err != nil {
		return nil, sourceErr(err)
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]*dto.PetitionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// Categories lista los tipos de solicitud admitidos.
func (uc *UseCase) Categories() []string {
	cats := entity.PetitionCategories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

func toResponse(p *entity.Petition) *dto.PetitionResponse {
	return &dto.PetitionResponse{
		ID:        p.ID,
		Radicado:  p.Radicado,
		FechaHora: p.FechaHora.Format(timestampLayout),
		Documento: p.Documento,
		Nombre:    p.Nombre,
		Tipo:      string(p.Tipo),
		Asunto:    p.Asunto,
		Estado:    p.Estado,
	}
}

func sourceErr(err error) error {
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
}
