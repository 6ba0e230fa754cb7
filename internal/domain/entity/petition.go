package entity

import "time"

// PetitionCategory tipo de solicitud PQRS (conjunto cerrado).
type PetitionCategory string

const (
	PetitionQueja        PetitionCategory = "Queja"
	PetitionReclamo      PetitionCategory = "Reclamo"
	PetitionPeticion     PetitionCategory = "Petición"
	PetitionSugerencia   PetitionCategory = "Sugerencia"
	PetitionFelicitacion PetitionCategory = "Felicitación"
)

// PetitionCategories devuelve las categorías válidas en el orden del formulario.
func PetitionCategories() []PetitionCategory {
	return []PetitionCategory{
		PetitionQueja, PetitionReclamo, PetitionPeticion, PetitionSugerencia, PetitionFelicitacion,
	}
}

// Valid indica si la categoría pertenece al conjunto cerrado.
func (c PetitionCategory) Valid() bool {
	for _, v := range PetitionCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// PetitionStatusReceived estado inicial de toda radicación.
const PetitionStatusReceived = "Recibido"

// Petition registro de una PQRS / derecho de petición. Solo se agrega, nunca se actualiza.
type Petition struct {
	ID        string
	FechaHora time.Time
	Radicado  string
	Documento string
	Nombre    string
	Curso     string
	Email     string
	Telefono  string
	Tipo      PetitionCategory
	Asunto    string
	Detalle   string
	Estado    string
}
