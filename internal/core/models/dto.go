package models

// DTOs mirror the broker management API's wire format (RabbitMQ compatible
// field names), so they serve both as gateway decode targets and as API
// response payloads.

type VHostDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tracing     bool   `json:"tracing,omitempty"`
}

type QueueDTO struct {
	// Identity
	VHost string `json:"vhost"`
	Name  string `json:"name"`

	// Properties/flags
	Durable    bool           `json:"durable"`
	AutoDelete bool           `json:"auto_delete"`
	Exclusive  bool           `json:"exclusive,omitempty"`
	Arguments  map[string]any `json:"arguments"`

	// Stats (present on reads, ignored on writes)
	Messages  int    `json:"messages,omitempty"`
	Consumers int    `json:"consumers,omitempty"`
	State     string `json:"state,omitempty"`
}

type ExchangeDTO struct {
	// Identity
	VHost string `json:"vhost"`
	Name  string `json:"name"`
	Type  string `json:"type"`

	// Properties/flags
	Durable    bool           `json:"durable"`
	AutoDelete bool           `json:"auto_delete"`
	Internal   bool           `json:"internal"`
	Arguments  map[string]any `json:"arguments"`
}

type BindingDTO struct {
	VHost           string         `json:"vhost"`
	Source          string         `json:"source"`
	Destination     string         `json:"destination"`
	DestinationType string         `json:"destination_type"`
	RoutingKey      string         `json:"routing_key"`
	Arguments       map[string]any `json:"arguments"`
	PropertiesKey   string         `json:"properties_key,omitempty"`
}

// ManagedSystemDTO is the read-only view of a logical system, reconstructed
// entirely from resource metadata tags. It is never persisted.
type ManagedSystemDTO struct {
	SystemID      string `json:"system_id"`
	Template      string `json:"template"`
	Version       string `json:"version"`
	CreatedAt     string `json:"created_at"` // ISO-8601, lexicographically sortable
	QueueCount    int    `json:"queue_count"`
	ExchangeCount int    `json:"exchange_count"`
}

type SystemResourcesDTO struct {
	Queues    []QueueDTO    `json:"queues"`
	Exchanges []ExchangeDTO `json:"exchanges"`
}

// RemainingExchange describes an exchange the teardown loop could not delete.
type RemainingExchange struct {
	Name         string `json:"name"`
	Reason       string `json:"reason"` // "has_bindings" or "orphaned_exchange"
	BindingCount int    `json:"binding_count"`
	IsManaged    bool   `json:"is_managed"`
	CreatedBy    string `json:"created_by,omitempty"`
}

type DeletionReport struct {
	SystemID           string              `json:"system_id"`
	DeletedQueues      []string            `json:"deleted_queues"`
	DeletedExchanges   []string            `json:"deleted_exchanges"`
	RemainingExchanges []RemainingExchange `json:"remaining_exchanges"`
}

type CredentialDTO struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
	Kind      string `json:"kind"` // "primary" or "secondary"
}

// TemplateInfoDTO summarizes a loaded template for listing endpoints.
type TemplateInfoDTO struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Parameters  int    `json:"parameters"`
	Queues      int    `json:"queues"`
	Exchanges   int    `json:"exchanges"`
	Bindings    int    `json:"bindings"`
}
