package dto

// CreatePetitionRequest body para POST /api/pqrs.
type CreatePetitionRequest struct {
	Documento string `json:"documento"`
	Nombre    string `json:"nombre"`
	Curso     string `json:"curso,omitempty"`
	Email     string `json:"email,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Tipo      string `json:"tipo"`
	Asunto    string `json:"asunto"`
	Detalle   string `json:"detalle,omitempty"`
}

// PetitionResponse radicación en respuestas.
type PetitionResponse struct {
	ID        string `json:"id"`
	Radicado  string `json:"radicado"`
	FechaHora string `json:"fecha_hora"` // YYYY-MM-DD HH:MM:SS
	Documento string `json:"documento"`
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	Asunto    string `json:"asunto"`
	Estado    string `json:"estado"`
}
