package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Notification event names pushed over the websocket hub.
const (
	EventPRCreated       = "pr.created"
	EventPRUpdated       = "pr.updated"
	EventPRDeleted       = "pr.deleted"
	EventPRResolved      = "pr.resolved"
	EventSettingsUpdated = "settings.updated"
	EventSettingsReset   = "settings.reset"
)

// Notifier pushes change events to connected clients. A nil Notifier is
// allowed and means no push channel is attached.
type Notifier interface {
	Publish(event string, payload interface{})
}

// --- DTOs ---

type LineItemDTO struct {
	ItemCode    string `json:"item_code"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	UnitPrice   string `json:"unit_price"` // decimal string
	Total       string `json:"total"`
}

type CreatePurchaseRequestDTO struct {
	PRType       string        `json:"pr_type" binding:"omitempty,oneof=GOODS SERVICES CAPEX OPEX"`
	Description  string        `json:"description"`
	Priority     string        `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status       string        `json:"status" binding:"omitempty,oneof=DRAFT SUBMITTED"`
	TotalAmount  string        `json:"total_amount"`
	RequiredDate string        `json:"required_date"` // YYYY-MM-DD
	Department   string        `json:"department"`
	CostCenter   string        `json:"cost_center"`
	Supplier     string        `json:"supplier"`
	CreatedBy    string        `json:"created_by"`
	Items        []LineItemDTO `json:"items"`
}

type UpdatePurchaseRequestDTO struct {
	PRType       *string        `json:"pr_type"`
	Description  *string        `json:"description"`
	Priority     *string        `json:"priority"`
	Status       *string        `json:"status"`
	TotalAmount  *string        `json:"total_amount"`
	RequiredDate *string        `json:"required_date"`
	DueDate      *string        `json:"due_date"`
	Department   *string        `json:"department"`
	CostCenter   *string        `json:"cost_center"`
	Supplier     *string        `json:"supplier"`
	Items        *[]LineItemDTO `json:"items"`
}

type DecisionDTO struct {
	Approver string `json:"approver"`
	Comment  string `json:"comment"`
}

type DelegateDTO struct {
	DelegateTo string `json:"delegate_to" binding:"required"`
	Comment    string `json:"comment"`
}

type CommentDTO struct {
	Comment   string `json:"comment" binding:"required"`
	Commenter string `json:"commenter"`
}

type BulkDecisionDTO struct {
	IDs      []string `json:"ids" binding:"required"`
	Approver string   `json:"approver"`
	Comment  string   `json:"comment"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	Comment   string `json:"comment"`
	Commenter string `json:"commenter"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

type PurchaseRequestResponse struct {
	ID                string            `json:"id"`
	PRNumber          string            `json:"pr_number"`
	PRType            string            `json:"pr_type"`
	Description       string            `json:"description"`
	Priority          string            `json:"priority"`
	Status            string            `json:"status"`
	StatusText        string            `json:"status_text"`
	WorkflowStatus    string            `json:"workflow_status"`
	WorkflowStep      string            `json:"workflow_step"`
	TotalAmount       string            `json:"total_amount"`
	Items             []LineItemDTO     `json:"items"`
	CreationDate      string            `json:"creation_date"`
	RequiredDate      string            `json:"required_date"`
	DueDate           string            `json:"due_date"`
	ApprovalDate      *string           `json:"approval_date"`
	RejectionDate     *string           `json:"rejection_date"`
	DelegationDate    *string           `json:"delegation_date"`
	LastUpdated       string            `json:"last_updated"`
	DueStatus         string            `json:"due_status"`
	DaysLeft          string            `json:"days_left"`
	Department        string            `json:"department"`
	CostCenter        string            `json:"cost_center"`
	Supplier          string            `json:"supplier"`
	CreatedBy         string            `json:"created_by"`
	Requestor         string            `json:"requestor"`
	RequestorTitle    string            `json:"requestor_title"`
	Approver          string            `json:"approver"`
	ApprovalComment   string            `json:"approval_comment"`
	RejectionComment  string            `json:"rejection_comment"`
	DelegationComment string            `json:"delegation_comment"`
	CanApprove        bool              `json:"can_approve"`
	AttachmentsCount  int               `json:"attachments_count"`
	TotalItems        int               `json:"total_items"`
	Comments          []CommentResponse `json:"comments"`
}

type ListFilter struct {
	Status     string
	Priority   string
	Department string
	SearchText string
}

type ApprovalHistoryEntry struct {
	ID           string `json:"id"`
	PRNumber     string `json:"pr_number"`
	Action       string `json:"action"`
	Approver     string `json:"approver"`
	DecisionDate string `json:"decision_date"`
	Comment      string `json:"comment"`
	Timestamp    string `json:"timestamp"`
}

type ApprovalStatistics struct {
	TotalPending      int     `json:"total_pending"`
	UrgentCount       int     `json:"urgent_count"`
	OverdueCount      int     `json:"overdue_count"`
	DelegatedCount    int     `json:"delegated_count"`
	TotalProcessed    int     `json:"total_processed"`
	ApprovalRate      int     `json:"approval_rate"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
}

// --- Interface ---

type PurchaseRequestService interface {
	Create(ctx context.Context, req CreatePurchaseRequestDTO) (PurchaseRequestResponse, error)
	List(ctx context.Context, filter ListFilter) []PurchaseRequestResponse
	Get(ctx context.Context, id string) (PurchaseRequestResponse, error)
	GetByNumber(ctx context.Context, number string) (PurchaseRequestResponse, error)
	Update(ctx context.Context, id string, req UpdatePurchaseRequestDTO) (PurchaseRequestResponse, error)
	Delete(ctx context.Context, id string) error

	Approve(ctx context.Context, id, approver, comment string) (PurchaseRequestResponse, error)
	Reject(ctx context.Context, id, approver, comment string) (PurchaseRequestResponse, error)
	Delegate(ctx context.Context, id, delegateTo, comment string) (PurchaseRequestResponse, error)
	AddComment(ctx context.Context, id, comment, commenter string) (PurchaseRequestResponse, error)
	BulkApprove(ctx context.Context, ids []string, approver, comment string) int
	BulkReject(ctx context.Context, ids []string, approver, comment string) int

	PendingApprovals(ctx context.Context) []PurchaseRequestResponse
	UrgentApprovals(ctx context.Context) []PurchaseRequestResponse
	OverdueApprovals(ctx context.Context) []PurchaseRequestResponse
	ApprovalHistory(ctx context.Context, windowDays int) []ApprovalHistoryEntry
	Statistics(ctx context.Context) ApprovalStatistics
}

type purchaseRequestService struct {
	repo *repository.PurchaseRequestRepository
	hub  Notifier
	log  *zap.Logger
	now  func() time.Time
}

// ServiceOption configures a purchase request service.
type ServiceOption func(*purchaseRequestService)

// WithServiceClock overrides the time source for tests.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *purchaseRequestService) { s.now = now }
}

func NewPurchaseRequestService(repo *repository.PurchaseRequestRepository, hub Notifier, log *zap.Logger, opts ...ServiceOption) PurchaseRequestService {
	s := &purchaseRequestService{repo: repo, hub: hub, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- CRUD ---

func (s *purchaseRequestService) Create(ctx context.Context, req CreatePurchaseRequestDTO) (PurchaseRequestResponse, error) {
	total := decimal.Zero
	if req.TotalAmount != "" {
		parsed, err := decimal.NewFromString(req.TotalAmount)
		if err != nil {
			return PurchaseRequestResponse{}, fmt.Errorf("invalid total_amount: %w", err)
		}
		if parsed.IsNegative() {
			return PurchaseRequestResponse{}, fmt.Errorf("total_amount must not be negative")
		}
		total = parsed
	}

	var requiredDate time.Time
	if req.RequiredDate != "" {
		parsed, err := time.Parse(dateLayout, req.RequiredDate)
		if err != nil {
			return PurchaseRequestResponse{}, fmt.Errorf("invalid required_date: %w", err)
		}
		requiredDate = parsed
	}

	items, err := itemsFromDTO(req.Items)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}

	pr := s.repo.Add(repository.NewPurchaseRequest{
		PRType:       req.PRType,
		Description:  req.Description,
		Priority:     req.Priority,
		Status:       req.Status,
		TotalAmount:  total,
		RequiredDate: requiredDate,
		Department:   req.Department,
		CostCenter:   req.CostCenter,
		Supplier:     req.Supplier,
		CreatedBy:    req.CreatedBy,
		Items:        items,
	})

	s.log.Info("purchase request created",
		zap.String("id", pr.ID),
		zap.String("pr_number", pr.PRNumber),
		zap.String("status", pr.Status))
	s.publish(EventPRCreated, toPurchaseRequestResponse(pr))

	return toPurchaseRequestResponse(pr), nil
}

func (s *purchaseRequestService) List(ctx context.Context, filter ListFilter) []PurchaseRequestResponse {
	prs := s.repo.Filter(repository.Filter{
		Status:     filter.Status,
		Priority:   filter.Priority,
		Department: filter.Department,
		SearchText: filter.SearchText,
	})
	return toResponses(prs)
}

func (s *purchaseRequestService) Get(ctx context.Context, id string) (PurchaseRequestResponse, error) {
	pr, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	return toPurchaseRequestResponse(pr), nil
}

func (s *purchaseRequestService) GetByNumber(ctx context.Context, number string) (PurchaseRequestResponse, error) {
	pr, err := s.repo.GetByNumber(number)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	return toPurchaseRequestResponse(pr), nil
}

func (s *purchaseRequestService) Update(ctx context.Context, id string, req UpdatePurchaseRequestDTO) (PurchaseRequestResponse, error) {
	patch := repository.UpdateFields{
		PRType:      req.PRType,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Department:  req.Department,
		CostCenter:  req.CostCenter,
		Supplier:    req.Supplier,
	}

	if req.TotalAmount != nil {
		parsed, err := decimal.NewFromString(*req.TotalAmount)
		if err != nil {
			return PurchaseRequestResponse{}, fmt.Errorf("invalid total_amount: %w", err)
		}
		patch.TotalAmount = &parsed
	}
	if req.RequiredDate != nil {
		parsed, err := time.Parse(dateLayout, *req.RequiredDate)
		if err != nil {
			return PurchaseRequestResponse{}, fmt.Errorf("invalid required_date: %w", err)
		}
		patch.RequiredDate = &parsed
	}
	if req.DueDate != nil {
		parsed, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return PurchaseRequestResponse{}, fmt.Errorf("invalid due_date: %w", err)
		}
		patch.DueDate = &parsed
	}
	if req.Items != nil {
		items, err := itemsFromDTO(*req.Items)
		if err != nil {
			return PurchaseRequestResponse{}, err
		}
		patch.Items = &items
	}

	if err := s.repo.Update(id, patch); err != nil {
		return PurchaseRequestResponse{}, err
	}

	pr, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	s.publish(EventPRUpdated, toPurchaseRequestResponse(pr))
	return toPurchaseRequestResponse(pr), nil
}

func (s *purchaseRequestService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info("purchase request deleted", zap.String("id", id))
	s.publish(EventPRDeleted, map[string]string{"id": id})
	return nil
}

// --- Approval workflow ---

func (s *purchaseRequestService) Approve(ctx context.Context, id, approver, comment string) (PurchaseRequestResponse, error) {
	return s.resolve(id, model.StatusApproved, approver, comment)
}

func (s *purchaseRequestService) Reject(ctx context.Context, id, approver, comment string) (PurchaseRequestResponse, error) {
	return s.resolve(id, model.StatusRejected, approver, comment)
}

// resolve applies a terminal approve/reject decision. Records that are no
// longer approvable are left untouched.
func (s *purchaseRequestService) resolve(id, status, approver, comment string) (PurchaseRequestResponse, error) {
	pr, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	if !pr.IsApprovable() {
		return PurchaseRequestResponse{}, fmt.Errorf("%w: status is %s", model.ErrAlreadyResolved, pr.Status)
	}

	if approver == "" {
		approver = "Current User"
	}
	now := s.now()
	canApprove := false

	patch := repository.UpdateFields{
		Status:     &status,
		Approver:   &approver,
		CanApprove: &canApprove,
	}
	if status == model.StatusApproved {
		patch.ApprovalDate = &now
		patch.ApprovalComment = &comment
	} else {
		patch.RejectionDate = &now
		patch.RejectionComment = &comment
		if comment == "" {
			rejected := "Rejected by approver"
			patch.RejectionComment = &rejected
		}
	}

	if err := s.repo.Update(id, patch); err != nil {
		return PurchaseRequestResponse{}, err
	}

	updated, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	s.log.Info("purchase request resolved",
		zap.String("id", id),
		zap.String("status", status),
		zap.String("approver", approver))
	s.publish(EventPRResolved, toPurchaseRequestResponse(updated))
	return toPurchaseRequestResponse(updated), nil
}

func (s *purchaseRequestService) Delegate(ctx context.Context, id, delegateTo, comment string) (PurchaseRequestResponse, error) {
	pr, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	if !pr.IsApprovable() {
		return PurchaseRequestResponse{}, fmt.Errorf("%w: status is %s", model.ErrAlreadyResolved, pr.Status)
	}

	now := s.now()
	status := model.StatusDelegated
	workflowStatus := "Delegated to " + delegateTo

	if err := s.repo.Update(id, repository.UpdateFields{
		Status:            &status,
		Approver:          &delegateTo,
		DelegationDate:    &now,
		DelegationComment: &comment,
		WorkflowStatus:    &workflowStatus,
	}); err != nil {
		return PurchaseRequestResponse{}, err
	}

	updated, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	s.log.Info("purchase request delegated",
		zap.String("id", id),
		zap.String("delegate", delegateTo))
	s.publish(EventPRUpdated, toPurchaseRequestResponse(updated))
	return toPurchaseRequestResponse(updated), nil
}

func (s *purchaseRequestService) AddComment(ctx context.Context, id, comment, commenter string) (PurchaseRequestResponse, error) {
	pr, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	if commenter == "" {
		commenter = "Current User"
	}

	comments := append(pr.Comments, model.Comment{
		ID:        "comment_" + uuid.NewString(),
		Comment:   comment,
		Commenter: commenter,
		Timestamp: s.now(),
		Type:      "APPROVAL_COMMENT",
	})

	if err := s.repo.Update(id, repository.UpdateFields{Comments: &comments}); err != nil {
		return PurchaseRequestResponse{}, err
	}

	updated, err := s.repo.Get(id)
	if err != nil {
		return PurchaseRequestResponse{}, err
	}
	s.publish(EventPRUpdated, toPurchaseRequestResponse(updated))
	return toPurchaseRequestResponse(updated), nil
}

func (s *purchaseRequestService) BulkApprove(ctx context.Context, ids []string, approver, comment string) int {
	count := 0
	for _, id := range ids {
		if _, err := s.Approve(ctx, id, approver, comment); err == nil {
			count++
		}
	}
	return count
}

func (s *purchaseRequestService) BulkReject(ctx context.Context, ids []string, approver, comment string) int {
	count := 0
	for _, id := range ids {
		if _, err := s.Reject(ctx, id, approver, comment); err == nil {
			count++
		}
	}
	return count
}

// --- Approval queries ---

func (s *purchaseRequestService) PendingApprovals(ctx context.Context) []PurchaseRequestResponse {
	return toResponses(s.pending())
}

func (s *purchaseRequestService) UrgentApprovals(ctx context.Context) []PurchaseRequestResponse {
	urgent := make([]model.PurchaseRequest, 0)
	for _, pr := range s.pending() {
		if pr.Priority == model.PriorityUrgent || pr.Priority == model.PriorityHigh {
			urgent = append(urgent, pr)
		}
	}
	return toResponses(urgent)
}

func (s *purchaseRequestService) OverdueApprovals(ctx context.Context) []PurchaseRequestResponse {
	overdue := make([]model.PurchaseRequest, 0)
	for _, pr := range s.pending() {
		if pr.DueStatus == model.DueOverdue {
			overdue = append(overdue, pr)
		}
	}
	return toResponses(overdue)
}

func (s *purchaseRequestService) pending() []model.PurchaseRequest {
	pending := make([]model.PurchaseRequest, 0)
	for _, pr := range s.repo.List() {
		if (pr.Status == model.StatusSubmitted || pr.Status == model.StatusPending) && pr.CanApprove {
			pending = append(pending, pr)
		}
	}
	return pending
}

func (s *purchaseRequestService) ApprovalHistory(ctx context.Context, windowDays int) []ApprovalHistoryEntry {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := s.now().AddDate(0, 0, -windowDays)

	entries := make([]ApprovalHistoryEntry, 0)
	for _, pr := range s.repo.List() {
		switch pr.Status {
		case model.StatusApproved, model.StatusRejected, model.StatusDelegated:
		default:
			continue
		}
		if !pr.LastUpdated.After(cutoff) {
			continue
		}

		action := "Delegated"
		comment := pr.DelegationComment
		decisionDate := pr.DelegationDate
		switch pr.Status {
		case model.StatusApproved:
			action = "Approved"
			comment = pr.ApprovalComment
			decisionDate = pr.ApprovalDate
		case model.StatusRejected:
			action = "Rejected"
			comment = pr.RejectionComment
			decisionDate = pr.RejectionDate
		}

		decision := pr.LastUpdated
		if decisionDate != nil {
			decision = *decisionDate
		}
		approver := pr.Approver
		if approver == "" {
			approver = "System"
		}

		entries = append(entries, ApprovalHistoryEntry{
			ID:           pr.ID,
			PRNumber:     pr.PRNumber,
			Action:       action,
			Approver:     approver,
			DecisionDate: decision.Format(dateLayout),
			Comment:      comment,
			Timestamp:    pr.LastUpdated.Format(time.RFC3339),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

func (s *purchaseRequestService) Statistics(ctx context.Context) ApprovalStatistics {
	all := s.repo.List()
	pending := s.pending()

	stats := ApprovalStatistics{TotalPending: len(pending)}
	for _, pr := range pending {
		if pr.Priority == model.PriorityUrgent || pr.Priority == model.PriorityHigh {
			stats.UrgentCount++
		}
		if pr.DueStatus == model.DueOverdue {
			stats.OverdueCount++
		}
	}

	approved, rejected := 0, 0
	totalDays := 0
	for _, pr := range all {
		switch pr.Status {
		case model.StatusApproved:
			approved++
		case model.StatusRejected:
			rejected++
		case model.StatusDelegated:
			stats.DelegatedCount++
			continue
		default:
			continue
		}
		totalDays += processingDays(pr)
	}

	stats.TotalProcessed = approved + rejected
	if stats.TotalProcessed > 0 {
		stats.ApprovalRate = int(math.Round(float64(approved) / float64(stats.TotalProcessed) * 100))
		stats.AvgProcessingTime = math.Round(float64(totalDays)/float64(stats.TotalProcessed)*10) / 10
	}
	return stats
}

// processingDays counts whole days from creation to the decision, clamped at
// zero so clock skew in stored data cannot go negative.
func processingDays(pr model.PurchaseRequest) int {
	decided := pr.LastUpdated
	if pr.ApprovalDate != nil {
		decided = *pr.ApprovalDate
	} else if pr.RejectionDate != nil {
		decided = *pr.RejectionDate
	}
	days := int(decided.Sub(pr.CreationDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func (s *purchaseRequestService) publish(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.Publish(event, payload)
	}
}

// --- Helpers ---

func itemsFromDTO(dtos []LineItemDTO) ([]model.LineItem, error) {
	items := make([]model.LineItem, 0, len(dtos))
	for i, dto := range dtos {
		price := decimal.Zero
		if dto.UnitPrice != "" {
			parsed, err := decimal.NewFromString(dto.UnitPrice)
			if err != nil {
				return nil, fmt.Errorf("invalid unit_price on item %d: %w", i, err)
			}
			if parsed.IsNegative() {
				return nil, fmt.Errorf("unit_price on item %d must not be negative", i)
			}
			price = parsed
		}
		if dto.Quantity < 0 {
			return nil, fmt.Errorf("quantity on item %d must not be negative", i)
		}
		items = append(items, model.LineItem{
			ItemCode:    dto.ItemCode,
			Description: dto.Description,
			Quantity:    dto.Quantity,
			UnitPrice:   price,
		})
	}
	return items, nil
}

func toResponses(prs []model.PurchaseRequest) []PurchaseRequestResponse {
	out := make([]PurchaseRequestResponse, 0, len(prs))
	for _, pr := range prs {
		out = append(out, toPurchaseRequestResponse(pr))
	}
	return out
}

func toPurchaseRequestResponse(pr model.PurchaseRequest) PurchaseRequestResponse {
	items := make([]LineItemDTO, 0, len(pr.Items))
	for _, item := range pr.Items {
		items = append(items, LineItemDTO{
			ItemCode:    item.ItemCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.String(),
			Total:       item.Total.String(),
		})
	}

	comments := make([]CommentResponse, 0, len(pr.Comments))
	for _, c := range pr.Comments {
		comments = append(comments, CommentResponse{
			ID:        c.ID,
			Comment:   c.Comment,
			Commenter: c.Commenter,
			Timestamp: c.Timestamp.Format(time.RFC3339),
			Type:      c.Type,
		})
	}

	return PurchaseRequestResponse{
		ID:                pr.ID,
		PRNumber:          pr.PRNumber,
		PRType:            pr.PRType,
		Description:       pr.Description,
		Priority:          pr.Priority,
		Status:            pr.Status,
		StatusText:        pr.StatusText,
		WorkflowStatus:    pr.WorkflowStatus,
		WorkflowStep:      pr.WorkflowStep,
		TotalAmount:       pr.TotalAmount.String(),
		Items:             items,
		CreationDate:      pr.CreationDate.Format(dateLayout),
		RequiredDate:      pr.RequiredDate.Format(dateLayout),
		DueDate:           pr.DueDate.Format(dateLayout),
		ApprovalDate:      formatDatePtr(pr.ApprovalDate),
		RejectionDate:     formatDatePtr(pr.RejectionDate),
		DelegationDate:    formatDatePtr(pr.DelegationDate),
		LastUpdated:       pr.LastUpdated.Format(time.RFC3339),
		DueStatus:         pr.DueStatus,
		DaysLeft:          pr.DaysLeft,
		Department:        pr.Department,
		CostCenter:        pr.CostCenter,
		Supplier:          pr.Supplier,
		CreatedBy:         pr.CreatedBy,
		Requestor:         pr.Requestor,
		RequestorTitle:    pr.RequestorTitle,
		Approver:          pr.Approver,
		ApprovalComment:   pr.ApprovalComment,
		RejectionComment:  pr.RejectionComment,
		DelegationComment: pr.DelegationComment,
		CanApprove:        pr.CanApprove,
		AttachmentsCount:  pr.AttachmentsCount,
		TotalItems:        pr.TotalItems,
		Comments:          comments,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
