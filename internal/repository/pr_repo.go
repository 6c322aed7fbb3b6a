package repository

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"backend/internal/model"
	"backend/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// firstSequence is the floor for the human-readable PR number counter.
const firstSequence = 1001

var prNumberPattern = regexp.MustCompile(`^PR-\d+-(\d+)$`)

// PurchaseRequestRepository owns the purchase request collection. All state
// lives in memory; every mutation writes the full collection snapshot to the
// store. A failed write is logged and the in-memory state stays authoritative.
type PurchaseRequestRepository struct {
	mu      sync.RWMutex
	store   storage.Store
	log     *zap.Logger
	now     func() time.Time
	prs     []model.PurchaseRequest
	nextSeq int
}

// Option configures a PurchaseRequestRepository.
type Option func(*PurchaseRequestRepository)

// WithClock overrides the time source. Tests use this to pin dates.
func WithClock(now func() time.Time) Option {
	return func(r *PurchaseRequestRepository) { r.now = now }
}

// NewPurchaseRequestRepository builds an empty repository over the given
// store. Call Init to load or seed the collection.
func NewPurchaseRequestRepository(store storage.Store, log *zap.Logger, opts ...Option) *PurchaseRequestRepository {
	r := &PurchaseRequestRepository{
		store:   store,
		log:     log,
		now:     time.Now,
		nextSeq: firstSequence,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init loads the persisted collection. When the store is empty (or holds an
// unreadable blob) and seedOnEmpty is set, the collection is seeded with
// synthetic demo records. The sequence counter resumes from the highest
// persisted number.
func (r *PurchaseRequestRepository) Init(seedOnEmpty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blob, ok := r.store.Load(storage.KeyPurchaseRequests); ok {
		var prs []model.PurchaseRequest
		if err := json.Unmarshal(blob, &prs); err != nil {
			r.log.Warn("persisted purchase requests unreadable, starting over", zap.Error(err))
		} else {
			r.prs = prs
		}
	}

	if len(r.prs) == 0 && seedOnEmpty {
		r.prs = seedPurchaseRequests(r.now())
		r.log.Info("seeded purchase request collection", zap.Int("count", len(r.prs)))
		r.persistLocked()
	}

	r.nextSeq = nextSequence(r.prs)
}

// nextSequence scans the collection for the highest minted sequence number
// and returns the one after it, never below the floor.
func nextSequence(prs []model.PurchaseRequest) int {
	highest := firstSequence - 1
	for _, pr := range prs {
		match := prNumberPattern.FindStringSubmatch(pr.PRNumber)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// NewPurchaseRequest carries the caller-supplied fields for Add. Zero values
// are defaulted; nothing else is validated at this layer.
type NewPurchaseRequest struct {
	PRType       string
	Description  string
	Priority     string
	Status       string
	TotalAmount  decimal.Decimal
	RequiredDate time.Time
	Department   string
	CostCenter   string
	Supplier     string
	CreatedBy    string
	Items        []model.LineItem
}

// Add creates a purchase request, assigns its id and PR number, derives the
// due fields and prepends it to the collection. Newest-first ordering is a
// guarantee of this repository.
func (r *PurchaseRequestRepository) Add(input NewPurchaseRequest) model.PurchaseRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if input.PRType == "" {
		input.PRType = model.PRTypeGoods
	}
	if input.Description == "" {
		input.Description = "New Purchase Request"
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if input.Status == "" || !model.ValidStatus(input.Status) {
		input.Status = model.StatusSubmitted
	}
	if input.CreatedBy == "" {
		input.CreatedBy = "Current User"
	}
	if input.RequiredDate.IsZero() {
		input.RequiredDate = now
	}

	items := make([]model.LineItem, len(input.Items))
	itemsTotal := decimal.Zero
	for i, item := range input.Items {
		item.Total = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items[i] = item
		itemsTotal = itemsTotal.Add(item.Total)
	}
	totalAmount := input.TotalAmount
	if totalAmount.IsZero() && len(items) > 0 {
		totalAmount = itemsTotal
	}

	dueDate := model.DueDateForPriority(input.Priority, now)
	number := fmt.Sprintf("PR-%d-%05d", now.Year(), r.nextSeq)
	r.nextSeq++

	pr := model.PurchaseRequest{
		ID:             uuid.NewString(),
		PRNumber:       number,
		PRType:         input.PRType,
		Description:    input.Description,
		Priority:       input.Priority,
		Status:         input.Status,
		StatusText:     model.StatusText(input.Status),
		WorkflowStatus: model.WorkflowStatusText(input.Status),
		WorkflowStep:   model.WorkflowStepText(input.Status),
		TotalAmount:    totalAmount,
		Items:          items,
		CreationDate:   now,
		RequiredDate:   input.RequiredDate,
		DueDate:        dueDate,
		LastUpdated:    now,
		DueStatus:      model.DueStatusFor(now, dueDate),
		DaysLeft:       model.DaysLeftFor(now, dueDate),
		Department:     input.Department,
		CostCenter:     input.CostCenter,
		Supplier:       input.Supplier,
		CreatedBy:      input.CreatedBy,
		Requestor:      input.CreatedBy,
		RequestorTitle: "Requester",
		CanApprove:     input.Status == model.StatusSubmitted || input.Status == model.StatusPending,
		TotalItems:     len(items),
		Comments:       []model.Comment{},
	}

	r.prs = append([]model.PurchaseRequest{pr}, r.prs...)
	r.persistLocked()

	return pr
}

// UpdateFields is a shallow patch: nil pointers leave the field untouched.
type UpdateFields struct {
	PRType            *string
	Description       *string
	Priority          *string
	Status            *string
	TotalAmount       *decimal.Decimal
	RequiredDate      *time.Time
	DueDate           *time.Time
	Department        *string
	CostCenter        *string
	Supplier          *string
	Approver          *string
	ApprovalDate      *time.Time
	RejectionDate     *time.Time
	DelegationDate    *time.Time
	ApprovalComment   *string
	RejectionComment  *string
	DelegationComment *string
	WorkflowStatus    *string
	WorkflowStep      *string
	CanApprove        *bool
	Items             *[]model.LineItem
	Comments          *[]model.Comment
}

// Update merges the patch onto the record with the given id. Status changes
// must be allowed by the workflow transition table. LastUpdated always moves;
// a due date change recomputes the due fields.
func (r *PurchaseRequestRepository) Update(id string, patch UpdateFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfLocked(id)
	if idx < 0 {
		return model.ErrNotFound
	}
	pr := &r.prs[idx]
	now := r.now()

	if patch.Status != nil && *patch.Status != pr.Status {
		if !model.ValidStatus(*patch.Status) {
			return fmt.Errorf("%w: unknown status %q", model.ErrIllegalTransition, *patch.Status)
		}
		if !model.CanTransition(pr.Status, *patch.Status) {
			return fmt.Errorf("%w: %s -> %s", model.ErrIllegalTransition, pr.Status, *patch.Status)
		}
		pr.Status = *patch.Status
		pr.StatusText = model.StatusText(pr.Status)
		pr.WorkflowStatus = model.WorkflowStatusText(pr.Status)
		pr.WorkflowStep = model.WorkflowStepText(pr.Status)
	}

	if patch.PRType != nil {
		pr.PRType = *patch.PRType
	}
	if patch.Description != nil {
		pr.Description = *patch.Description
	}
	if patch.Priority != nil {
		pr.Priority = *patch.Priority
	}
	if patch.TotalAmount != nil {
		pr.TotalAmount = *patch.TotalAmount
	}
	if patch.RequiredDate != nil {
		pr.RequiredDate = *patch.RequiredDate
	}
	if patch.Department != nil {
		pr.Department = *patch.Department
	}
	if patch.CostCenter != nil {
		pr.CostCenter = *patch.CostCenter
	}
	if patch.Supplier != nil {
		pr.Supplier = *patch.Supplier
	}
	if patch.Approver != nil {
		pr.Approver = *patch.Approver
	}
	if patch.ApprovalDate != nil {
		pr.ApprovalDate = patch.ApprovalDate
	}
	if patch.RejectionDate != nil {
		pr.RejectionDate = patch.RejectionDate
	}
	if patch.DelegationDate != nil {
		pr.DelegationDate = patch.DelegationDate
	}
	if patch.ApprovalComment != nil {
		pr.ApprovalComment = *patch.ApprovalComment
	}
	if patch.RejectionComment != nil {
		pr.RejectionComment = *patch.RejectionComment
	}
	if patch.DelegationComment != nil {
		pr.DelegationComment = *patch.DelegationComment
	}
	if patch.WorkflowStatus != nil {
		pr.WorkflowStatus = *patch.WorkflowStatus
	}
	if patch.WorkflowStep != nil {
		pr.WorkflowStep = *patch.WorkflowStep
	}
	if patch.CanApprove != nil {
		pr.CanApprove = *patch.CanApprove
	}
	if patch.Items != nil {
		items := make([]model.LineItem, len(*patch.Items))
		for i, item := range *patch.Items {
			item.Total = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			items[i] = item
		}
		pr.Items = items
		pr.TotalItems = len(items)
	}
	if patch.Comments != nil {
		pr.Comments = *patch.Comments
	}

	if patch.DueDate != nil {
		pr.DueDate = *patch.DueDate
		pr.DueStatus = model.DueStatusFor(now, pr.DueDate)
		pr.DaysLeft = model.DaysLeftFor(now, pr.DueDate)
	}

	pr.LastUpdated = now
	r.persistLocked()
	return nil
}

// Delete removes the record with the given id.
func (r *PurchaseRequestRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfLocked(id)
	if idx < 0 {
		return model.ErrNotFound
	}
	r.prs = append(r.prs[:idx], r.prs[idx+1:]...)
	r.persistLocked()
	return nil
}

// Get returns the record with the given id.
func (r *PurchaseRequestRepository) Get(id string) (model.PurchaseRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOfLocked(id)
	if idx < 0 {
		return model.PurchaseRequest{}, model.ErrNotFound
	}
	return r.freshCopyLocked(idx), nil
}

// GetByNumber returns the record with the given human-readable PR number.
func (r *PurchaseRequestRepository) GetByNumber(number string) (model.PurchaseRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.prs {
		if r.prs[i].PRNumber == number {
			return r.freshCopyLocked(i), nil
		}
	}
	return model.PurchaseRequest{}, model.ErrNotFound
}

// List returns the full collection, newest first, with due fields refreshed
// against the current date.
func (r *PurchaseRequestRepository) List() []model.PurchaseRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PurchaseRequest, len(r.prs))
	for i := range r.prs {
		out[i] = r.freshCopyLocked(i)
	}
	return out
}

// Filter selects records matching every given criterion. SearchText matches
// the PR number or description, case-insensitively. An empty filter returns
// the full collection in order.
type Filter struct {
	Status     string
	Priority   string
	Department string
	SearchText string
}

// Filter applies the criteria, ANDed together.
func (r *PurchaseRequestRepository) Filter(f Filter) []model.PurchaseRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.SearchText)
	out := make([]model.PurchaseRequest, 0, len(r.prs))
	for i := range r.prs {
		pr := &r.prs[i]
		if f.Status != "" && pr.Status != f.Status {
			continue
		}
		if f.Priority != "" && pr.Priority != f.Priority {
			continue
		}
		if f.Department != "" && pr.Department != f.Department {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(pr.PRNumber), search) &&
			!strings.Contains(strings.ToLower(pr.Description), search) {
			continue
		}
		out = append(out, r.freshCopyLocked(i))
	}
	return out
}

// ReplaceAll swaps in a whole new collection (import path). The sequence
// counter is recomputed from the new records.
func (r *PurchaseRequestRepository) ReplaceAll(prs []model.PurchaseRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prs = make([]model.PurchaseRequest, len(prs))
	copy(r.prs, prs)
	r.nextSeq = nextSequence(r.prs)
	r.persistLocked()
}

// Count returns the collection size.
func (r *PurchaseRequestRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prs)
}

func (r *PurchaseRequestRepository) indexOfLocked(id string) int {
	for i := range r.prs {
		if r.prs[i].ID == id {
			return i
		}
	}
	return -1
}

// freshCopyLocked copies a record and recomputes the volatile due fields so
// reads always reflect today's date, not the date of the last write.
func (r *PurchaseRequestRepository) freshCopyLocked(idx int) model.PurchaseRequest {
	pr := r.prs[idx]
	now := r.now()
	pr.DueStatus = model.DueStatusFor(now, pr.DueDate)
	pr.DaysLeft = model.DaysLeftFor(now, pr.DueDate)
	return pr
}

func (r *PurchaseRequestRepository) persistLocked() {
	blob, err := json.Marshal(r.prs)
	if err != nil {
		r.log.Error("marshal purchase requests failed", zap.Error(err))
		return
	}
	if !r.store.Save(storage.KeyPurchaseRequests, blob) {
		r.log.Warn("snapshot not persisted, collection is memory-only",
			zap.Int("count", len(r.prs)))
	}
}
