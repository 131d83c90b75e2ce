package models

type ErrorResponse struct {
	Error string `json:"error"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"missing or malformed JWT"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type VHostListResponse struct {
	VHosts []VHostDTO `json:"vhosts"`
}

type TemplateListResponse struct {
	Templates []TemplateInfoDTO `json:"templates"`
}

type SystemListResponse struct {
	Systems []ManagedSystemDTO `json:"systems"`
}

type CredentialListResponse struct {
	Credentials []CredentialDTO `json:"credentials"`
}

// FieldError is a single parameter validation failure, keyed by field so a UI
// can correlate it with its input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// RenderPreviewResponse is a rendered resource set returned without touching
// the broker.
type RenderPreviewResponse struct {
	Exchanges []ExchangeDTO `json:"exchanges"`
	Queues    []QueueDTO    `json:"queues"`
	Bindings  []BindingDTO  `json:"bindings"`
}

type CreateSystemResponse struct {
	SystemID  string `json:"system_id"`
	Queues    int    `json:"queues"`
	Exchanges int    `json:"exchanges"`
	Bindings  int    `json:"bindings"`
}
