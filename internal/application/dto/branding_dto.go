package dto

// BrandingDTO respuesta de GET /api/branding: lo que antes distinguía las tres variantes.
type BrandingDTO struct {
	InstitutionName string          `json:"institution_name"`
	Motto           string          `json:"motto"`
	LogoURL         string          `json:"logo_url,omitempty"`
	Theme           ThemeDTO        `json:"theme"`
	Features        map[string]bool `json:"features"`
	ChatProvider    string          `json:"chat_provider"`
}

// ThemeDTO colores en hexadecimal.
type ThemeDTO struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}
