package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IneligibleResponse cuerpo 409 cuando el paz y salvo está bloqueado por deuda.
type IneligibleResponse struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	PendingTotal   string   `json:"pending_total"`
	PendingPeriods []string `json:"pending_periods"`
}

// ServiceErrorResponse cuerpo 502: estado y mensaje del proveedor sin modificar.
type ServiceErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Provider       string `json:"provider"`
	ProviderStatus int    `json:"provider_status,omitempty"`
}
