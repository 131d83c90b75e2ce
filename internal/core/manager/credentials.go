package manager

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/identity"
	"github.com/mqforge/mqforge/internal/core/models"
)

// CredentialExchange is the well-known internal exchange whose bindings act
// as the credential registry. Credential records live entirely in binding
// arguments; there is no separate store.
const CredentialExchange = "mqforge.credentials"

// ListSystemCredentials scans the credential registry's bindings for records
// whose destination names a resource belonging to the system.
func (s *Service) ListSystemCredentials(ctx context.Context, vhost, systemID string) ([]models.CredentialDTO, error) {
	resources, err := s.GetSystemResources(ctx, vhost, systemID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(resources.Queues)+len(resources.Exchanges))
	for _, q := range resources.Queues {
		owned[q.Name] = true
	}
	for _, ex := range resources.Exchanges {
		owned[ex.Name] = true
	}

	bindings, err := s.gw.ListBindings(ctx, vhost)
	if err != nil {
		return nil, err
	}

	credentials := make([]models.CredentialDTO, 0)
	for _, b := range bindings {
		if b.Source != CredentialExchange || !owned[b.Destination] {
			continue
		}
		username, ok := identity.Tag(b.Arguments, identity.TagCredUsername)
		if !ok {
			continue
		}
		password, _ := identity.Tag(b.Arguments, identity.TagCredPassword)
		createdAt, _ := identity.Tag(b.Arguments, identity.TagCredCreatedAt)
		kind, _ := identity.Tag(b.Arguments, identity.TagCredKind)
		credentials = append(credentials, models.CredentialDTO{
			Username:  username,
			Password:  password,
			CreatedAt: createdAt,
			Kind:      kind,
		})
	}

	sort.Slice(credentials, func(i, j int) bool {
		if credentials[i].CreatedAt != credentials[j].CreatedAt {
			return credentials[i].CreatedAt > credentials[j].CreatedAt
		}
		return credentials[i].Username < credentials[j].Username
	})
	return credentials, nil
}

// AttachCredential records a credential for a system by binding the registry
// exchange to one of the system's queues with the credential encoded in the
// binding arguments.
func (s *Service) AttachCredential(ctx context.Context, vhost, systemID, username, password, kind string) error {
	resources, err := s.GetSystemResources(ctx, vhost, systemID)
	if err != nil {
		return err
	}
	if len(resources.Queues) == 0 {
		return fmt.Errorf("system '%s' not found in vhost '%s'", systemID, vhost)
	}

	// The registry exchange is declared lazily; the broker upserts.
	err = s.gw.CreateExchange(ctx, vhost, CredentialExchange, gateway.ExchangeOptions{
		Type:     "direct",
		Durable:  true,
		Internal: true,
	})
	if err != nil {
		return fmt.Errorf("failed to declare credential registry exchange: %w", err)
	}

	destination := resources.Queues[0].Name
	opts := gateway.BindingOptions{
		RoutingKey: username,
		Arguments: map[string]any{
			identity.TagCredUsername:  username,
			identity.TagCredPassword:  password,
			identity.TagCredCreatedAt: time.Now().UTC().Format(time.RFC3339),
			identity.TagCredKind:      kind,
		},
	}
	if err := s.gw.CreateBinding(ctx, vhost, CredentialExchange, destination, opts); err != nil {
		return fmt.Errorf("failed to record credential for '%s': %w", systemID, err)
	}

	log.Info().Str("system_id", systemID).Str("username", username).Str("kind", kind).
		Msg("Credential attached")
	return nil
}
