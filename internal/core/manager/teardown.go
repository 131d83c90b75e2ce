package manager

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/identity"
	"github.com/mqforge/mqforge/internal/core/models"
)

// Teardown reasons for exchanges that remain after the deletion loop.
const (
	ReasonHasBindings      = "has_bindings"
	ReasonOrphanedExchange = "orphaned_exchange"
)

// isProtectedExchange reports whether the broker will not allow (or we must
// not attempt) deletion: the unnamed default exchange and the reserved
// amq.* exchanges. Protected exchanges are excluded silently everywhere;
// they never appear as deleted or remaining.
func isProtectedExchange(name string) bool {
	return name == "" || strings.HasPrefix(name, "amq.")
}

// DeleteSystem tears down a logical system: every tagged queue is deleted,
// then the exchanges the system depended on are removed by a fixed-point
// loop that only deletes an exchange once it has no outgoing bindings left.
// Exchanges that cannot be removed are classified in the report rather than
// failing the teardown.
func (s *Service) DeleteSystem(ctx context.Context, vhost, systemID string) (*models.DeletionReport, error) {
	resources, err := s.GetSystemResources(ctx, vhost, systemID)
	if err != nil {
		return nil, err
	}

	bindings, err := s.gw.ListBindings(ctx, vhost)
	if err != nil {
		return nil, err
	}

	// Exchanges bound as source to any of this system's queues: the ones the
	// system depends on, whether it created them or reused someone else's.
	systemQueues := make(map[string]bool, len(resources.Queues))
	for _, q := range resources.Queues {
		systemQueues[q.Name] = true
	}
	usedExchanges := make(map[string]bool)
	for _, b := range bindings {
		if b.DestinationType != "exchange" && systemQueues[b.Destination] {
			usedExchanges[b.Source] = true
		}
	}

	report := &models.DeletionReport{
		SystemID:           systemID,
		DeletedQueues:      []string{},
		DeletedExchanges:   []string{},
		RemainingExchanges: []models.RemainingExchange{},
	}

	for _, q := range resources.Queues {
		if err := s.gw.DeleteQueue(ctx, vhost, q.Name); err != nil {
			if gateway.IsNotFound(err) {
				log.Debug().Str("queue", q.Name).Msg("Queue already gone during teardown")
				continue
			}
			return nil, fmt.Errorf("failed to delete queue '%s': %w", q.Name, err)
		}
		report.DeletedQueues = append(report.DeletedQueues, q.Name)
	}

	// Re-observe queue state: the ids still present decide later whether a
	// foreign-tagged exchange counts as orphaned.
	queuesAfter, err := s.gw.ListQueues(ctx, vhost)
	if err != nil {
		return nil, err
	}
	existingSystemIDs := make(map[string]bool)
	for _, q := range queuesAfter {
		if id, ok := identity.SystemIDOf(q.Arguments); ok {
			existingSystemIDs[id] = true
		}
	}

	exchangesAfter, err := s.gw.ListExchanges(ctx, vhost)
	if err != nil {
		return nil, err
	}
	exchangeByName := make(map[string]models.ExchangeDTO, len(exchangesAfter))
	for _, ex := range exchangesAfter {
		exchangeByName[ex.Name] = ex
	}

	// Candidate set: used exchanges that still exist, minus protected ones
	// and minus exchanges owned by another system. Foreign-owned exchanges
	// are never deleted automatically, only classified.
	candidates := make(map[string]models.ExchangeDTO)
	kept := make(map[string]models.ExchangeDTO)
	for name := range usedExchanges {
		ex, exists := exchangeByName[name]
		if !exists || isProtectedExchange(name) {
			continue
		}
		if tag, ok := identity.SystemIDOf(ex.Arguments); ok && tag != systemID {
			kept[name] = ex
			continue
		}
		candidates[name] = ex
	}

	// Fixed-point loop: deleting an exchange implicitly removes its bindings,
	// which can unblock another candidate in the next round. Each deletion
	// only shrinks the dependency graph, so len(candidates)+1 rounds bound
	// the worst case (a chain of exchanges bound to each other); the cap
	// guards against a pathological binding cycle that never converges.
	maxRounds := len(candidates) + 1
	for round := 1; len(candidates) > 0; round++ {
		if round > maxRounds {
			log.Warn().Str("system_id", systemID).Int("rounds", round-1).
				Msg("Teardown loop hit round cap without converging, keeping leftover exchanges")
			break
		}

		currentBindings, err := s.gw.ListBindings(ctx, vhost)
		if err != nil {
			return nil, err
		}
		outgoing := make(map[string]int)
		for _, b := range currentBindings {
			outgoing[b.Source]++
		}

		progress := false
		for _, name := range sortedKeys(candidates) {
			if outgoing[name] > 0 {
				continue
			}
			err := s.gw.DeleteExchange(ctx, vhost, name)
			switch {
			case err == nil:
				report.DeletedExchanges = append(report.DeletedExchanges, name)
			case gateway.IsNotFound(err):
				log.Debug().Str("exchange", name).Msg("Exchange already gone during teardown")
			default:
				// Resilient by contract: keep going, classify it later.
				log.Error().Err(err).Str("exchange", name).Msg("Failed to delete exchange, keeping it")
				kept[name] = candidates[name]
				delete(candidates, name)
				continue
			}
			delete(candidates, name)
			progress = true
		}
		if !progress {
			break
		}
	}

	// Whatever is left still has bindings (or could not be deleted); take a
	// fresh binding count for the report.
	for name, ex := range candidates {
		kept[name] = ex
	}
	if len(kept) > 0 {
		finalBindings, err := s.gw.ListBindings(ctx, vhost)
		if err != nil {
			return nil, err
		}
		outgoing := make(map[string]int)
		for _, b := range finalBindings {
			outgoing[b.Source]++
		}

		for _, name := range sortedKeys(kept) {
			ex := kept[name]
			tag, tagged := identity.SystemIDOf(ex.Arguments)

			remaining := models.RemainingExchange{
				Name:         name,
				Reason:       ReasonHasBindings,
				BindingCount: outgoing[name],
				IsManaged:    tagged,
			}
			if tagged && tag != systemID {
				remaining.CreatedBy = tag
				if !existingSystemIDs[tag] {
					// Its creator system has already vanished; safe to
					// force-delete, but never done automatically.
					remaining.Reason = ReasonOrphanedExchange
				}
			}
			report.RemainingExchanges = append(report.RemainingExchanges, remaining)
		}
	}

	s.collector.RecordSystemDeleted()
	s.collector.RecordResourcesDeleted(len(report.DeletedQueues), len(report.DeletedExchanges))
	s.recordOperation("teardown", systemID, vhost, "succeeded",
		fmt.Sprintf("deleted %d queues, %d exchanges, %d remaining",
			len(report.DeletedQueues), len(report.DeletedExchanges), len(report.RemainingExchanges)))
	log.Info().Str("system_id", systemID).
		Int("deleted_queues", len(report.DeletedQueues)).
		Int("deleted_exchanges", len(report.DeletedExchanges)).
		Int("remaining_exchanges", len(report.RemainingExchanges)).
		Msg("System deleted")

	return report, nil
}

// ForceDeleteExchanges is best-effort cleanup for leftovers (typically
// orphaned exchanges from the teardown report). A failure on one name is
// logged and does not stop processing of the rest.
func (s *Service) ForceDeleteExchanges(ctx context.Context, vhost string, names []string) []string {
	deleted := make([]string, 0, len(names))
	for _, name := range names {
		if isProtectedExchange(name) {
			log.Warn().Str("exchange", name).Msg("Refusing to force-delete protected exchange")
			continue
		}
		if err := s.gw.DeleteExchange(ctx, vhost, name); err != nil {
			log.Error().Err(err).Str("exchange", name).Msg("Failed to force-delete exchange")
			continue
		}
		deleted = append(deleted, name)
	}

	s.collector.RecordResourcesDeleted(0, len(deleted))
	outcome := "succeeded"
	if len(deleted) == 0 && len(names) > 0 {
		outcome = "failed"
	}
	s.recordOperation("force_delete", "", vhost, outcome,
		fmt.Sprintf("deleted %d of %d exchanges", len(deleted), len(names)))
	return deleted
}

func sortedKeys(m map[string]models.ExchangeDTO) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
