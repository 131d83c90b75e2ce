package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sysA = "retry-system@/:orders"

func TestDeleteSystemSharedExchangeScenario(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addQueue("/", "Q2", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addQueue("/", "Q3", nil) // external, untagged
	gw.addExchange("/", "E1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E2", nil)
	gw.bind("/", "E1", "Q1", "queue")
	gw.bind("/", "E2", "Q2", "queue")
	gw.bind("/", "E2", "Q3", "queue")
	service := newTestService(t, gw)

	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Q1", "Q2"}, report.DeletedQueues)
	// E1 loses its only binding once Q1 is gone.
	assert.Equal(t, []string{"E1"}, report.DeletedExchanges)

	require.Len(t, report.RemainingExchanges, 1)
	remaining := report.RemainingExchanges[0]
	assert.Equal(t, "E2", remaining.Name)
	assert.Equal(t, ReasonHasBindings, remaining.Reason)
	assert.GreaterOrEqual(t, remaining.BindingCount, 1) // still bound to Q3
	assert.False(t, remaining.IsManaged)

	// The external queue survived.
	assert.Contains(t, gw.queues["/"], "Q3")
	assert.Contains(t, gw.exchanges["/"], "E2")
}

func TestDeleteSystemOrphanedExchangeScenario(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	// E3 belongs to sysB, which has no queues left anywhere.
	gw.addExchange("/", "E3", tagged("sysB@/:x", "other", "1.0", "2026-07-01T10:00:00Z"))
	gw.bind("/", "E3", "Q1", "queue")
	service := newTestService(t, gw)

	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1"}, report.DeletedQueues)
	assert.Empty(t, report.DeletedExchanges)

	require.Len(t, report.RemainingExchanges, 1)
	remaining := report.RemainingExchanges[0]
	assert.Equal(t, "E3", remaining.Name)
	assert.Equal(t, ReasonOrphanedExchange, remaining.Reason)
	assert.Equal(t, "sysB@/:x", remaining.CreatedBy)
	assert.True(t, remaining.IsManaged)

	// Never deleted automatically, even with zero bindings left.
	assert.Contains(t, gw.exchanges["/"], "E3")
}

func TestDeleteSystemForeignExchangeWithLivingOwner(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addQueue("/", "other.q", tagged("sysB@/:x", "other", "1.0", "2026-07-01T10:00:00Z"))
	gw.addExchange("/", "EB", tagged("sysB@/:x", "other", "1.0", "2026-07-01T10:00:00Z"))
	gw.bind("/", "EB", "Q1", "queue")
	service := newTestService(t, gw)

	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	require.Len(t, report.RemainingExchanges, 1)
	remaining := report.RemainingExchanges[0]
	assert.Equal(t, "EB", remaining.Name)
	// sysB still has a queue, so EB is not orphaned.
	assert.Equal(t, ReasonHasBindings, remaining.Reason)
	assert.Equal(t, "sysB@/:x", remaining.CreatedBy)
}

func TestDeleteSystemSkipsProtectedExchanges(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "", nil)
	gw.addExchange("/", "amq.direct", nil)
	gw.bind("/", "", "Q1", "queue")
	gw.bind("/", "amq.direct", "Q1", "queue")
	service := newTestService(t, gw)

	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1"}, report.DeletedQueues)
	assert.Empty(t, report.DeletedExchanges)
	// Protected exchanges are excluded silently, not reported as blocking.
	assert.Empty(t, report.RemainingExchanges)
	assert.Contains(t, gw.exchanges["/"], "amq.direct")
}

func TestDeleteSystemFixedPointNeedsMultipleRounds(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addQueue("/", "Q2", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E2", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.bind("/", "E1", "Q1", "queue")
	gw.bind("/", "E2", "Q2", "queue")
	// E1 also routes into E2, so E1 can only go once E2 is gone.
	gw.bind("/", "E1", "E2", "exchange")
	service := newTestService(t, gw)

	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	// First round deletes E2 (no outgoing bindings once Q2 is gone), which
	// drops E1's binding to it; the second round deletes E1.
	assert.Equal(t, []string{"E2", "E1"}, report.DeletedExchanges)
	assert.Empty(t, report.RemainingExchanges)
}

func TestDeleteSystemKeepsExchangeWhenDeletionFails(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.bind("/", "E1", "Q1", "queue")
	gw.failDeleteExchange["E1"] = errors.New("precondition failed")
	service := newTestService(t, gw)

	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	assert.Empty(t, report.DeletedExchanges)
	require.Len(t, report.RemainingExchanges, 1)
	assert.Equal(t, "E1", report.RemainingExchanges[0].Name)
	assert.Equal(t, ReasonHasBindings, report.RemainingExchanges[0].Reason)
}

func TestDeleteSystemRefetchesBindingsEachRound(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.bind("/", "E1", "Q1", "queue")
	service := newTestService(t, gw)

	gw.bindingFetches = 0
	_, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	// Initial dependency snapshot plus at least one per loop round.
	assert.GreaterOrEqual(t, gw.bindingFetches, 2)
}

func TestDeleteSystemBindingCycleTerminatesBounded(t *testing.T) {
	gw := newFakeGateway()
	gw.addQueue("/", "Q1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E1", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.addExchange("/", "E2", tagged(sysA, "retry-system", "1.2", "2026-08-01T10:00:00Z"))
	gw.bind("/", "E1", "Q1", "queue")
	gw.bind("/", "E2", "Q1", "queue")
	// E1 and E2 route into each other; neither ever reaches zero outgoing
	// bindings, so the loop can never converge by deletion.
	gw.bind("/", "E1", "E2", "exchange")
	gw.bind("/", "E2", "E1", "exchange")
	service := newTestService(t, gw)

	gw.bindingFetches = 0
	report, err := service.DeleteSystem(context.Background(), "/", sysA)
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1"}, report.DeletedQueues)
	assert.Empty(t, report.DeletedExchanges)

	// Both cycle members survive and are reported as blocked.
	require.Len(t, report.RemainingExchanges, 2)
	for _, rem := range report.RemainingExchanges {
		assert.Equal(t, ReasonHasBindings, rem.Reason)
		assert.Equal(t, 1, rem.BindingCount)
		assert.True(t, rem.IsManaged)
	}
	assert.Contains(t, gw.exchanges["/"], "E1")
	assert.Contains(t, gw.exchanges["/"], "E2")

	// Termination is bounded: initial dependency snapshot, the single
	// no-progress round, and the final report count. The round cap is
	// never needed because a deletion-free round ends the loop.
	assert.LessOrEqual(t, gw.bindingFetches, 3)
}

func TestForceDeleteExchangesIsBestEffort(t *testing.T) {
	gw := newFakeGateway()
	gw.addExchange("/", "E1", nil)
	gw.addExchange("/", "E2", nil)
	gw.failDeleteExchange["E1"] = errors.New("still in use")
	service := newTestService(t, gw)

	deleted := service.ForceDeleteExchanges(context.Background(), "/", []string{"E1", "E2", "amq.topic", "missing"})

	assert.Equal(t, []string{"E2"}, deleted)
	assert.Contains(t, gw.exchanges["/"], "E1")
	assert.NotContains(t, gw.exchanges["/"], "E2")
}

func TestForceDeleteExchangesAuditOutcome(t *testing.T) {
	gw := newFakeGateway()
	gw.addExchange("/", "E1", nil)
	gw.addExchange("/", "E2", nil)
	gw.failDeleteExchange["E1"] = errors.New("still in use")
	gw.failDeleteExchange["E2"] = errors.New("still in use")
	audit := &fakeAudit{}
	service := NewService(gw, nil, nil, audit)

	deleted := service.ForceDeleteExchanges(context.Background(), "/", []string{"E1", "E2"})
	assert.Empty(t, deleted)

	require.Len(t, audit.ops, 1)
	assert.Equal(t, "force_delete", audit.ops[0].Kind)
	assert.Equal(t, "failed", audit.ops[0].Outcome)

	// A partial success still counts as succeeded.
	delete(gw.failDeleteExchange, "E2")
	deleted = service.ForceDeleteExchanges(context.Background(), "/", []string{"E1", "E2"})
	assert.Equal(t, []string{"E2"}, deleted)

	require.Len(t, audit.ops, 2)
	assert.Equal(t, "succeeded", audit.ops[1].Outcome)
	assert.Equal(t, "deleted 1 of 2 exchanges", audit.ops[1].Detail)
}
