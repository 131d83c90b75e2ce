package manager

import (
	"context"
	"sort"

	"github.com/mqforge/mqforge/internal/core/identity"
	"github.com/mqforge/mqforge/internal/core/models"
)

// ListManagedSystems reconstructs the logical systems on a vhost from
// resource metadata. Systems are enumerated strictly from tagged queues;
// exchanges are attributed secondarily, and an exchange whose system id
// matches no queue never revives that system.
func (s *Service) ListManagedSystems(ctx context.Context, vhost string) ([]models.ManagedSystemDTO, error) {
	queues, err := s.gw.ListQueues(ctx, vhost)
	if err != nil {
		return nil, err
	}
	exchanges, err := s.gw.ListExchanges(ctx, vhost)
	if err != nil {
		return nil, err
	}

	grouped := identity.GroupBy(queues, func(q models.QueueDTO) (string, bool) {
		return identity.SystemIDOf(q.Arguments)
	})

	systems := make(map[string]*models.ManagedSystemDTO, len(grouped))
	for systemID, members := range grouped {
		first := members[0]
		tpl, _ := identity.Tag(first.Arguments, identity.TagTemplate)
		version, _ := identity.Tag(first.Arguments, identity.TagVersion)
		createdAt, _ := identity.Tag(first.Arguments, identity.TagCreatedAt)
		systems[systemID] = &models.ManagedSystemDTO{
			SystemID:   systemID,
			Template:   tpl,
			Version:    version,
			CreatedAt:  createdAt,
			QueueCount: len(members),
		}
	}

	// Exchanges only count toward systems already discovered via queues.
	for _, ex := range exchanges {
		if systemID, ok := identity.SystemIDOf(ex.Arguments); ok {
			if system, found := systems[systemID]; found {
				system.ExchangeCount++
			}
		}
	}

	list := make([]models.ManagedSystemDTO, 0, len(systems))
	for _, system := range systems {
		list = append(list, *system)
	}
	// Newest first; ISO-8601 timestamps sort lexicographically.
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt != list[j].CreatedAt {
			return list[i].CreatedAt > list[j].CreatedAt
		}
		return list[i].SystemID < list[j].SystemID
	})
	return list, nil
}

// GetSystemResources returns the queues and exchanges tagged with the given
// system id, from a fresh fetch.
func (s *Service) GetSystemResources(ctx context.Context, vhost, systemID string) (*models.SystemResourcesDTO, error) {
	queues, err := s.gw.ListQueues(ctx, vhost)
	if err != nil {
		return nil, err
	}
	exchanges, err := s.gw.ListExchanges(ctx, vhost)
	if err != nil {
		return nil, err
	}

	resources := &models.SystemResourcesDTO{
		Queues:    make([]models.QueueDTO, 0),
		Exchanges: make([]models.ExchangeDTO, 0),
	}
	for _, q := range queues {
		if id, ok := identity.SystemIDOf(q.Arguments); ok && id == systemID {
			resources.Queues = append(resources.Queues, q)
		}
	}
	for _, ex := range exchanges {
		if id, ok := identity.SystemIDOf(ex.Arguments); ok && id == systemID {
			resources.Exchanges = append(resources.Exchanges, ex)
		}
	}
	return resources, nil
}
