package pqrs_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/application/pqrs"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

type memoryPetitions struct {
	mu   sync.Mutex
	list []*entity.Petition
	err  error
}

func (m *memoryPetitions) Append(_ context.Context, p *entity.Petition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.list = append(m.list, p)
	return nil
}

func (m *memoryPetitions) FindByTrackingCode(_ context.Context, radicado string) ([]*entity.Petition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Petition{}
	for _, p := range m.list {
		if strings.EqualFold(p.Radicado, radicado) {
			out = append(out, p)
		}
	}
	return out, nil
}

func newUseCase(repo *memoryPetitions) *pqrs.UseCase {
	now := time.Date(2024, 3, 5, 9, 15, 0, 0, time.UTC)
	return pqrs.NewUseCase(repo, func() time.Time { return now }, zerolog.Nop())
}

func validRequest() dto.CreatePetitionRequest {
	return dto.CreatePetitionRequest{
		Documento: "789",
		Nombre:    "Carlos Ruiz",
		Curso:     "4C",
		Email:     "carlos@example.com",
		Tipo:      "Reclamo",
		Asunto:    "Cobro duplicado",
		Detalle:   "Febrero aparece dos veces",
	}
}

func TestSubmit_Radica(t *testing.T) {
	repo := &memoryPetitions{}
	out, err := newUseCase(repo).Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "RAD-20240305-35A9E381B1", out.Radicado)
	assert.Equal(t, "Recibido", out.Estado)
	assert.Equal(t, "2024-03-05 09:15:00", out.FechaHora)
	assert.NotEmpty(t, out.ID)
	require.Len(t, repo.list, 1)
	assert.Equal(t, "carlos@example.com", repo.list[0].Email)
}

func TestSubmit_MismoDiaMismoRadicadoDistintoID(t *testing.T) {
	repo := &memoryPetitions{}
	uc := newUseCase(repo)
	a, err := uc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	b, err := uc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, a.Radicado, b.Radicado)
	assert.NotEqual(t, a.ID, b.ID)

	found, err := uc.FindByRadicado(context.Background(), strings.ToLower(a.Radicado))
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestSubmit_Validaciones(t *testing.T) {
	cases := map[string]func(*dto.CreatePetitionRequest){
		"sin documento": func(r *dto.CreatePetitionRequest) { r.Documento = "  " },
		"sin nombre":    func(r *dto.CreatePetitionRequest) { r.Nombre = "" },
		"sin asunto":    func(r *dto.CreatePetitionRequest) { r.Asunto = "" },
		"tipo inválido": func(r *dto.CreatePetitionRequest) { r.Tipo = "Denuncia" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &memoryPetitions{}
			req := validRequest()
			mutate(&req)
			_, err := newUseCase(repo).Submit(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, repo.list)
		})
	}
}

func TestSubmit_BitacoraCaidaNoEntregaRadicado(t *testing.T) {
	out, err := newUseCase(&memoryPetitions{err: errors.New("archivo bloqueado")}).Submit(context.Background(), validRequest())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestFindByRadicado_NoEncontrado(t *testing.T) {
	_, err := newUseCase(&memoryPetitions{}).FindByRadicado(context.Background(), "RAD-20240305-XXXXXXXXXX")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Queja", "Reclamo", "Petición", "Sugerencia", "Felicitación"}, newUseCase(&memoryPetitions{}).Categories())
}
