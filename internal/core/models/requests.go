package models

type CreateSystemRequest struct {
	VHost      string         `json:"vhost"` // Optional; defaults to "/"
	Template   string         `json:"template" validate:"required"`
	Parameters map[string]any `json:"parameters"`
}

type RenderRequest struct {
	Template   string         `json:"template" validate:"required"`
	Parameters map[string]any `json:"parameters"`
}

type ForceDeleteRequest struct {
	VHost     string   `json:"vhost"` // Optional; defaults to "/"
	Exchanges []string `json:"exchanges" validate:"required,min=1"`
}

type AttachCredentialRequest struct {
	VHost    string `json:"vhost"` // Optional; defaults to "/"
	SystemID string `json:"system_id" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=primary secondary"`
}

type PublishTestRequest struct {
	VHost      string `json:"vhost"` // Optional; defaults to "/"
	Exchange   string `json:"exchange" validate:"required"`
	RoutingKey string `json:"routing_key"`
	Payload    string `json:"payload"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AddUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
