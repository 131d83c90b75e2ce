package manager

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/identity"
	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/internal/core/template"
)

const defaultExchangeType = "direct"

// ProvisionFromTemplate validates the submitted parameter values against the
// named template, renders it, and creates the system. Validation errors
// short-circuit: nothing is created.
func (s *Service) ProvisionFromTemplate(ctx context.Context, vhost, templateName string, params map[string]any) (*models.CreateSystemResponse, []template.ValidationError, error) {
	tpl := s.templates.Get(templateName)
	if tpl == nil {
		return nil, nil, fmt.Errorf("template '%s' not found", templateName)
	}

	cfg, validationErrs := template.ValidateAndRender(tpl, params)
	if len(validationErrs) > 0 {
		return nil, validationErrs, nil
	}
	cfg.VHost = vhost

	resp, err := s.CreateSystem(ctx, cfg, tpl.Metadata.Name, tpl.Metadata.Version, params)
	if err != nil {
		return nil, nil, err
	}
	return resp, nil, nil
}

// CreateSystem provisions a rendered resource set in dependency order:
// exchanges, then queues, then bindings. Every created resource is tagged
// with ownership metadata. The operation is not transactional: a failure
// leaves earlier resources in place for the operator to inspect or retry.
func (s *Service) CreateSystem(ctx context.Context, cfg *template.RenderedSystemConfig, templateName, templateVersion string, userParams map[string]any) (*models.CreateSystemResponse, error) {
	vhost := cfg.VHost
	prefix := identity.PrefixFrom(userParams)
	systemID := identity.DeriveSystemID(templateName, vhost, prefix)
	metadata := identity.BuildMetadata(systemID, templateName, templateVersion)

	log.Info().Str("system_id", systemID).Str("vhost", vhost).
		Int("exchanges", len(cfg.Exchanges)).Int("queues", len(cfg.Queues)).Int("bindings", len(cfg.Bindings)).
		Msg("Provisioning system")

	fail := func(err error) (*models.CreateSystemResponse, error) {
		s.collector.RecordProvisionFailure(templateName)
		s.recordOperation("provision", systemID, vhost, "failed", err.Error())
		return nil, err
	}

	for _, spec := range cfg.Exchanges {
		if err := s.provisionExchange(ctx, vhost, spec, metadata); err != nil {
			return fail(err)
		}
	}

	for _, spec := range cfg.Queues {
		if err := s.provisionQueue(ctx, vhost, spec, metadata); err != nil {
			return fail(err)
		}
	}

	// Bindings have no reuse concept; the broker deduplicates identical
	// tuples server side.
	for _, spec := range cfg.Bindings {
		opts := gateway.BindingOptions{
			DestinationKind: spec.DestinationKind,
			RoutingKey:      spec.RoutingKey,
			Arguments:       identity.MergeArguments(spec.Arguments, metadata),
		}
		if err := s.gw.CreateBinding(ctx, vhost, spec.Source, spec.Destination, opts); err != nil {
			return fail(fmt.Errorf("failed to bind '%s' -> '%s': %w", spec.Source, spec.Destination, err))
		}
	}

	s.collector.RecordSystemProvisioned(templateName)
	s.recordOperation("provision", systemID, vhost, "succeeded", "")
	log.Info().Str("system_id", systemID).Msg("System provisioned")

	return &models.CreateSystemResponse{
		SystemID:  systemID,
		Queues:    len(cfg.Queues),
		Exchanges: len(cfg.Exchanges),
		Bindings:  len(cfg.Bindings),
	}, nil
}

func (s *Service) provisionExchange(ctx context.Context, vhost string, spec template.ExchangeSpec, metadata map[string]any) error {
	existing, err := s.gw.GetExchange(ctx, vhost, spec.Name)
	if err != nil && !gateway.IsNotFound(err) {
		return err
	}

	if existing == nil {
		exchangeType := spec.Type
		if exchangeType == "" {
			exchangeType = defaultExchangeType
		}
		return s.gw.CreateExchange(ctx, vhost, spec.Name, gateway.ExchangeOptions{
			Type:       exchangeType,
			Durable:    spec.Durable,
			AutoDelete: spec.AutoDelete,
			Internal:   spec.Internal,
			Arguments:  identity.MergeArguments(spec.Arguments, metadata),
		})
	}

	if !spec.ReuseIfExists {
		return &ConflictError{Resource: spec.Name}
	}
	if len(spec.ValidateIfExists) == 0 {
		log.Debug().Str("exchange", spec.Name).Msg("Reusing existing exchange")
		return nil
	}
	if mismatches := exchangeMismatches(spec.ValidateIfExists, existing); len(mismatches) > 0 {
		return &ConflictError{Resource: spec.Name, Mismatches: mismatches}
	}
	log.Debug().Str("exchange", spec.Name).Msg("Reusing validated existing exchange")
	return nil
}

func (s *Service) provisionQueue(ctx context.Context, vhost string, spec template.QueueSpec, metadata map[string]any) error {
	existing, err := s.gw.GetQueue(ctx, vhost, spec.Name)
	if err != nil && !gateway.IsNotFound(err) {
		return err
	}

	if existing == nil {
		return s.gw.CreateQueue(ctx, vhost, spec.Name, gateway.QueueOptions{
			Durable:    spec.Durable,
			AutoDelete: spec.AutoDelete,
			Arguments:  identity.MergeArguments(spec.Arguments, metadata),
		})
	}

	if !spec.ReuseIfExists {
		return &ConflictError{Resource: spec.Name}
	}
	if len(spec.ValidateIfExists) == 0 {
		log.Debug().Str("queue", spec.Name).Msg("Reusing existing queue")
		return nil
	}
	if mismatches := queueMismatches(spec.ValidateIfExists, existing); len(mismatches) > 0 {
		return &ConflictError{Resource: spec.Name, Mismatches: mismatches}
	}
	log.Debug().Str("queue", spec.Name).Msg("Reusing validated existing queue")
	return nil
}

// exchangeMismatches compares each declared key against the live exchange.
// All mismatches are aggregated so the conflict error lists every one.
func exchangeMismatches(expected map[string]any, existing *models.ExchangeDTO) []string {
	var mismatches []string
	for key, want := range expected {
		switch key {
		case "type":
			mismatches = appendMismatch(mismatches, key, want, existing.Type)
		case "durable":
			mismatches = appendMismatch(mismatches, key, want, existing.Durable)
		case "autoDelete":
			mismatches = appendMismatch(mismatches, key, want, existing.AutoDelete)
		case "internal":
			mismatches = appendMismatch(mismatches, key, want, existing.Internal)
		case "arguments":
			mismatches = append(mismatches, argumentMismatches(want, existing.Arguments)...)
		default:
			mismatches = append(mismatches, fmt.Sprintf("unknown property '%s'", key))
		}
	}
	return mismatches
}

func queueMismatches(expected map[string]any, existing *models.QueueDTO) []string {
	var mismatches []string
	for key, want := range expected {
		switch key {
		case "durable":
			mismatches = appendMismatch(mismatches, key, want, existing.Durable)
		case "autoDelete":
			mismatches = appendMismatch(mismatches, key, want, existing.AutoDelete)
		case "arguments":
			mismatches = append(mismatches, argumentMismatches(want, existing.Arguments)...)
		default:
			mismatches = append(mismatches, fmt.Sprintf("unknown property '%s'", key))
		}
	}
	return mismatches
}

// argumentMismatches checks each declared argument key individually against
// the existing resource's argument map.
func argumentMismatches(want any, existing map[string]any) []string {
	wantMap, ok := want.(map[string]any)
	if !ok {
		return []string{"arguments: expected a map"}
	}
	var mismatches []string
	for key, value := range wantMap {
		got, present := existing[key]
		if !present {
			mismatches = append(mismatches, fmt.Sprintf("arguments.%s expected %v, found none", key, value))
			continue
		}
		mismatches = appendMismatch(mismatches, "arguments."+key, value, got)
	}
	return mismatches
}

func appendMismatch(mismatches []string, key string, want, got any) []string {
	if fmt.Sprintf("%v", want) == fmt.Sprintf("%v", got) {
		return mismatches
	}
	return append(mismatches, fmt.Sprintf("%s expected %v, found %v", key, want, got))
}
