package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var baseTime = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type serviceFixture struct {
	repo    *repository.PurchaseRequestRepository
	service PurchaseRequestService
	hub     *recordingNotifier
	clock   *time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	current := baseTime
	clock := func() time.Time { return current }

	repo := repository.NewPurchaseRequestRepository(storage.NewMemoryStore(), zap.NewNop(),
		repository.WithClock(clock))
	repo.Init(false)

	hub := &recordingNotifier{}
	svc := NewPurchaseRequestService(repo, hub, zap.NewNop(), WithServiceClock(clock))
	return &serviceFixture{repo: repo, service: svc, hub: hub, clock: &current}
}

func (f *serviceFixture) create(t *testing.T, dto CreatePurchaseRequestDTO) PurchaseRequestResponse {
	t.Helper()
	pr, err := f.service.Create(context.Background(), dto)
	require.NoError(t, err)
	return pr
}

func TestCreatePurchaseRequest(t *testing.T) {
	f := newServiceFixture(t)

	pr := f.create(t, CreatePurchaseRequestDTO{
		Description: "Warehouse scanners",
		Priority:    "HIGH",
		Department:  "Operations",
		Supplier:    "Global Electronics",
		Items: []LineItemDTO{
			{ItemCode: "ITM-100", Description: "Scanner", Quantity: 4, UnitPrice: "250"},
		},
	})

	assert.Equal(t, "PR-2026-01001", pr.PRNumber)
	assert.Equal(t, model.StatusSubmitted, pr.Status)
	assert.Equal(t, "1000", pr.TotalAmount)
	assert.Equal(t, "2026-03-12", pr.DueDate)
	require.Len(t, pr.Items, 1)
	assert.Equal(t, "1000", pr.Items[0].Total)
	assert.Equal(t, []string{EventPRCreated}, f.hub.names())
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, CreatePurchaseRequestDTO{TotalAmount: "not-a-number"})
	assert.Error(t, err)

	_, err = f.service.Create(ctx, CreatePurchaseRequestDTO{TotalAmount: "-5"})
	assert.Error(t, err)

	_, err = f.service.Create(ctx, CreatePurchaseRequestDTO{RequiredDate: "03/10/2026"})
	assert.Error(t, err)

	_, err = f.service.Create(ctx, CreatePurchaseRequestDTO{
		Items: []LineItemDTO{{Quantity: 1, UnitPrice: "-10"}},
	})
	assert.Error(t, err)

	assert.Equal(t, 0, f.repo.Count())
}

func TestUpdatePurchaseRequest(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{Description: "Cables"})

	desc := "Network cables"
	total := "420.50"
	updated, err := f.service.Update(context.Background(), pr.ID, UpdatePurchaseRequestDTO{
		Description: &desc,
		TotalAmount: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, "Network cables", updated.Description)
	assert.Equal(t, "420.5", updated.TotalAmount)

	_, err = f.service.Update(context.Background(), "missing", UpdatePurchaseRequestDTO{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestApprove(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{Description: "Printers"})

	approved, err := f.service.Approve(context.Background(), pr.ID, "Jane Manager", "Within budget")
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Equal(t, "Jane Manager", approved.Approver)
	assert.Equal(t, "Within budget", approved.ApprovalComment)
	assert.False(t, approved.CanApprove)
	require.NotNil(t, approved.ApprovalDate)
	assert.Equal(t, "2026-03-10", *approved.ApprovalDate)
}

func TestApproveTwiceIsRefused(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{})

	_, err := f.service.Approve(context.Background(), pr.ID, "", "")
	require.NoError(t, err)

	_, err = f.service.Approve(context.Background(), pr.ID, "", "")
	assert.ErrorIs(t, err, model.ErrAlreadyResolved)

	_, err = f.service.Reject(context.Background(), pr.ID, "", "")
	assert.ErrorIs(t, err, model.ErrAlreadyResolved)
}

func TestRejectDefaultsComment(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{})

	rejected, err := f.service.Reject(context.Background(), pr.ID, "", "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, rejected.Status)
	assert.Equal(t, "Current User", rejected.Approver)
	assert.Equal(t, "Rejected by approver", rejected.RejectionComment)
	require.NotNil(t, rejected.RejectionDate)
}

func TestDelegate(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{})

	delegated, err := f.service.Delegate(context.Background(), pr.ID, "Sarah Davis", "Out of office")
	require.NoError(t, err)

	assert.Equal(t, model.StatusDelegated, delegated.Status)
	assert.Equal(t, "Sarah Davis", delegated.Approver)
	assert.Equal(t, "Delegated to Sarah Davis", delegated.WorkflowStatus)
	assert.Equal(t, "Out of office", delegated.DelegationComment)
	require.NotNil(t, delegated.DelegationDate)

	// The delegate can still decide.
	approved, err := f.service.Approve(context.Background(), pr.ID, "Sarah Davis", "ok")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
}

func TestAddComment(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{})

	withComment, err := f.service.AddComment(context.Background(), pr.ID, "Check the quote", "")
	require.NoError(t, err)

	require.Len(t, withComment.Comments, 1)
	assert.Equal(t, "Check the quote", withComment.Comments[0].Comment)
	assert.Equal(t, "Current User", withComment.Comments[0].Commenter)

	again, err := f.service.AddComment(context.Background(), pr.ID, "Quote looks fine", "Finance")
	require.NoError(t, err)
	assert.Len(t, again.Comments, 2)
}

func TestBulkDecisionsCountSuccesses(t *testing.T) {
	f := newServiceFixture(t)
	a := f.create(t, CreatePurchaseRequestDTO{})
	b := f.create(t, CreatePurchaseRequestDTO{})

	count := f.service.BulkApprove(context.Background(), []string{a.ID, b.ID, "missing"}, "Jane", "")
	assert.Equal(t, 2, count)

	// Already approved: nothing left to reject.
	count = f.service.BulkReject(context.Background(), []string{a.ID, b.ID}, "Jane", "")
	assert.Equal(t, 0, count)
}

func TestApprovalQueues(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.create(t, CreatePurchaseRequestDTO{Description: "urgent one", Priority: "URGENT"})
	f.create(t, CreatePurchaseRequestDTO{Description: "high one", Priority: "HIGH"})
	f.create(t, CreatePurchaseRequestDTO{Description: "low one", Priority: "LOW"})
	resolved := f.create(t, CreatePurchaseRequestDTO{Description: "already done", Priority: "URGENT"})
	_, err := f.service.Approve(ctx, resolved.ID, "", "")
	require.NoError(t, err)

	assert.Len(t, f.service.PendingApprovals(ctx), 3)
	assert.Len(t, f.service.UrgentApprovals(ctx), 2)
	assert.Empty(t, f.service.OverdueApprovals(ctx))

	// Three days on, the URGENT request (due next day) is overdue; the LOW
	// one (due in ten) is not.
	*f.clock = baseTime.AddDate(0, 0, 3)
	overdue := f.service.OverdueApprovals(ctx)
	require.Len(t, overdue, 2)
	for _, pr := range overdue {
		assert.Equal(t, model.DueOverdue, pr.DueStatus)
	}
}

func TestApprovalHistory(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	a := f.create(t, CreatePurchaseRequestDTO{Description: "old decision"})
	b := f.create(t, CreatePurchaseRequestDTO{Description: "recent approval"})
	c := f.create(t, CreatePurchaseRequestDTO{Description: "recent rejection"})
	f.create(t, CreatePurchaseRequestDTO{Description: "still pending"})

	_, err := f.service.Approve(ctx, a.ID, "Jane", "early call")
	require.NoError(t, err)

	*f.clock = baseTime.AddDate(0, 0, 40)
	_, err = f.service.Approve(ctx, b.ID, "Jane", "fine")
	require.NoError(t, err)
	*f.clock = baseTime.AddDate(0, 0, 41)
	_, err = f.service.Reject(ctx, c.ID, "Mark", "over budget")
	require.NoError(t, err)

	*f.clock = baseTime.AddDate(0, 0, 42)
	history := f.service.ApprovalHistory(ctx, 30)

	// The decision from day zero fell out of the 30-day window.
	require.Len(t, history, 2)
	assert.Equal(t, "Rejected", history[0].Action)
	assert.Equal(t, "Mark", history[0].Approver)
	assert.Equal(t, "Approved", history[1].Action)

	// A wider window brings it back.
	assert.Len(t, f.service.ApprovalHistory(ctx, 60), 3)
}

func TestStatisticsEmptyCollection(t *testing.T) {
	f := newServiceFixture(t)

	stats := f.service.Statistics(context.Background())
	assert.Zero(t, stats.TotalPending)
	assert.Zero(t, stats.TotalProcessed)
	assert.Zero(t, stats.ApprovalRate)
	assert.Zero(t, stats.AvgProcessingTime)
}

func TestStatistics(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	a := f.create(t, CreatePurchaseRequestDTO{Priority: "URGENT"})
	b := f.create(t, CreatePurchaseRequestDTO{Priority: "LOW"})
	f.create(t, CreatePurchaseRequestDTO{Priority: "HIGH"})
	d := f.create(t, CreatePurchaseRequestDTO{})

	_, err := f.service.Delegate(ctx, d.ID, "Robert Wilson", "")
	require.NoError(t, err)

	*f.clock = baseTime.AddDate(0, 0, 2)
	_, err = f.service.Approve(ctx, a.ID, "Jane", "")
	require.NoError(t, err)

	*f.clock = baseTime.AddDate(0, 0, 5)
	_, err = f.service.Reject(ctx, b.ID, "Jane", "")
	require.NoError(t, err)

	stats := f.service.Statistics(ctx)
	assert.Equal(t, 1, stats.TotalPending)
	assert.Equal(t, 1, stats.UrgentCount)
	assert.Equal(t, 1, stats.DelegatedCount)
	assert.Equal(t, 2, stats.TotalProcessed)
	assert.Equal(t, 50, stats.ApprovalRate)
	assert.InDelta(t, 3.5, stats.AvgProcessingTime, 0.001)
}

func TestDeletePublishesEvent(t *testing.T) {
	f := newServiceFixture(t)
	pr := f.create(t, CreatePurchaseRequestDTO{})

	require.NoError(t, f.service.Delete(context.Background(), pr.ID))
	assert.Equal(t, []string{EventPRCreated, EventPRDeleted}, f.hub.names())

	assert.ErrorIs(t, f.service.Delete(context.Background(), pr.ID), model.ErrNotFound)
}

func TestListAppliesFilters(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.create(t, CreatePurchaseRequestDTO{Description: "Office chairs", Department: "HR"})
	f.create(t, CreatePurchaseRequestDTO{Description: "Server racks", Department: "IT"})

	assert.Len(t, f.service.List(ctx, ListFilter{}), 2)
	got := f.service.List(ctx, ListFilter{Department: "IT"})
	require.Len(t, got, 1)
	assert.Equal(t, "Server racks", got[0].Description)

	got = f.service.List(ctx, ListFilter{SearchText: "chairs"})
	require.Len(t, got, 1)
	assert.Equal(t, "Office chairs", got[0].Description)
}

func TestNilNotifierIsSafe(t *testing.T) {
	current := baseTime
	repo := repository.NewPurchaseRequestRepository(storage.NewMemoryStore(), zap.NewNop(),
		repository.WithClock(func() time.Time { return current }))
	repo.Init(false)

	svc := NewPurchaseRequestService(repo, nil, zap.NewNop(),
		WithServiceClock(func() time.Time { return current }))

	_, err := svc.Create(context.Background(), CreatePurchaseRequestDTO{})
	assert.NoError(t, err)
}
