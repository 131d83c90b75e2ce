package manager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/internal/core/template"
	"github.com/mqforge/mqforge/pkg/metrics"
)

// Gateway is the slice of the broker gateway the manager consumes. Tests
// implement it over fixture resource lists without network access.
type Gateway interface {
	ListVhosts(ctx context.Context) ([]models.VHostDTO, error)

	ListQueues(ctx context.Context, vhost string) ([]models.QueueDTO, error)
	GetQueue(ctx context.Context, vhost, name string) (*models.QueueDTO, error)
	CreateQueue(ctx context.Context, vhost, name string, opts gateway.QueueOptions) error
	DeleteQueue(ctx context.Context, vhost, name string) error

	ListExchanges(ctx context.Context, vhost string) ([]models.ExchangeDTO, error)
	GetExchange(ctx context.Context, vhost, name string) (*models.ExchangeDTO, error)
	CreateExchange(ctx context.Context, vhost, name string, opts gateway.ExchangeOptions) error
	DeleteExchange(ctx context.Context, vhost, name string) error

	ListBindings(ctx context.Context, vhost string) ([]models.BindingDTO, error)
	CreateBinding(ctx context.Context, vhost, source, destination string, opts gateway.BindingOptions) error
}

// Operation is one provisioning or teardown run, recorded for the audit log.
type Operation struct {
	ID        string
	Kind      string // "provision", "teardown", "force_delete"
	SystemID  string
	VHost     string
	Outcome   string // "succeeded" or "failed"
	Detail    string
	CreatedAt time.Time
}

// AuditRecorder persists operations. Recording failures are logged, never
// propagated into the operation's own outcome.
type AuditRecorder interface {
	RecordOperation(op Operation) error
}

// Service is the system lifecycle manager: it provisions rendered resource
// sets, discovers tagged systems, and tears them down.
type Service struct {
	gw        Gateway
	templates *template.Registry
	collector metrics.Collector
	audit     AuditRecorder
}

func NewService(gw Gateway, templates *template.Registry, collector metrics.Collector, audit AuditRecorder) *Service {
	if collector == nil {
		collector = metrics.NewNoop()
	}
	return &Service{
		gw:        gw,
		templates: templates,
		collector: collector,
		audit:     audit,
	}
}

// Templates returns the template registry backing this service.
func (s *Service) Templates() *template.Registry {
	return s.templates
}

// ListVhosts passes through to the gateway's cached vhost listing.
func (s *Service) ListVhosts(ctx context.Context) ([]models.VHostDTO, error) {
	return s.gw.ListVhosts(ctx)
}

func (s *Service) recordOperation(kind, systemID, vhost, outcome, detail string) {
	if s.audit == nil {
		return
	}
	op := Operation{
		ID:        uuid.NewString(),
		Kind:      kind,
		SystemID:  systemID,
		VHost:     vhost,
		Outcome:   outcome,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.audit.RecordOperation(op); err != nil {
		log.Error().Err(err).Str("kind", kind).Str("system_id", systemID).Msg("Failed to record operation")
	}
}

// ConflictError reports one or more ways an existing resource violates the
// template's reuse policy. Fatal for the provisioning run.
type ConflictError struct {
	Resource   string
	Mismatches []string
}

func (e *ConflictError) Error() string {
	if len(e.Mismatches) == 0 {
		return fmt.Sprintf("resource conflict: '%s' already exists", e.Resource)
	}
	return fmt.Sprintf("resource conflict: '%s': %s", e.Resource, strings.Join(e.Mismatches, "; "))
}
