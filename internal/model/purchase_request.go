package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest status enum constants
const (
	StatusDraft      = "DRAFT"
	StatusSubmitted  = "SUBMITTED"
	StatusPending    = "PENDING"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusInProgress = "IN_PROGRESS"
	StatusDelegated  = "DELEGATED"
)

// PurchaseRequest type enum constants
const (
	PRTypeGoods    = "GOODS"
	PRTypeServices = "SERVICES"
	PRTypeCapex    = "CAPEX"
	PRTypeOpex     = "OPEX"
)

// Priority enum constants
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// LineItem is a single ordered line on a purchase request.
// Total is always quantity x unit price, recomputed when the line is stored.
type LineItem struct {
	ItemCode    string          `json:"item_code"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Comment is an append-only remark attached to a purchase request.
type Comment struct {
	ID        string    `json:"id"`
	Comment   string    `json:"comment"`
	Commenter string    `json:"commenter"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
}

// PurchaseRequest is the core workflow entity. Exactly one status at a time;
// status/workflow display texts and due fields are derived and kept in sync by
// the repository on every write.
type PurchaseRequest struct {
	ID       string `json:"id"`
	PRNumber string `json:"pr_number"`

	PRType      string `json:"pr_type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`

	Status         string `json:"status"`
	StatusText     string `json:"status_text"`
	WorkflowStatus string `json:"workflow_status"`
	WorkflowStep   string `json:"workflow_step"`

	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []LineItem      `json:"items"`

	CreationDate   time.Time  `json:"creation_date"`
	RequiredDate   time.Time  `json:"required_date"`
	DueDate        time.Time  `json:"due_date"`
	ApprovalDate   *time.Time `json:"approval_date"`
	RejectionDate  *time.Time `json:"rejection_date"`
	DelegationDate *time.Time `json:"delegation_date"`
	LastUpdated    time.Time  `json:"last_updated"`

	DueStatus string `json:"due_status"`
	DaysLeft  string `json:"days_left"`

	Department     string `json:"department"`
	CostCenter     string `json:"cost_center"`
	Supplier       string `json:"supplier"`
	CreatedBy      string `json:"created_by"`
	Requestor      string `json:"requestor"`
	RequestorTitle string `json:"requestor_title"`

	Approver          string `json:"approver"`
	ApprovalComment   string `json:"approval_comment"`
	RejectionComment  string `json:"rejection_comment"`
	DelegationComment string `json:"delegation_comment"`
	CanApprove        bool   `json:"can_approve"`

	AttachmentsCount int       `json:"attachments_count"`
	TotalItems       int       `json:"total_items"`
	Comments         []Comment `json:"comments"`
}

// IsTerminal reports whether the request has been fully processed.
func (pr *PurchaseRequest) IsTerminal() bool {
	return pr.Status == StatusApproved || pr.Status == StatusRejected
}

// IsApprovable reports whether an approve/reject decision may still be taken.
func (pr *PurchaseRequest) IsApprovable() bool {
	switch pr.Status {
	case StatusSubmitted, StatusPending:
		return pr.CanApprove
	case StatusDelegated:
		// The delegate still has to decide.
		return true
	default:
		return false
	}
}

// statusTransitions maps a status to the set of statuses reachable from it.
// DELEGATED may flow back to PENDING when the delegate hands the request on.
var statusTransitions = map[string][]string{
	StatusDraft:      {StatusSubmitted},
	StatusSubmitted:  {StatusPending, StatusApproved, StatusRejected, StatusDelegated},
	StatusPending:    {StatusApproved, StatusRejected, StatusDelegated},
	StatusDelegated:  {StatusPending, StatusApproved, StatusRejected},
	StatusApproved:   {StatusInProgress},
	StatusRejected:   {},
	StatusInProgress: {},
}

// CanTransition reports whether a status change from -> to is allowed.
// Setting the same status again is a no-op and always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

var statusTextMap = map[string]string{
	StatusDraft:      "Draft",
	StatusSubmitted:  "Submitted for Approval",
	StatusPending:    "Pending Approval",
	StatusApproved:   "Approved",
	StatusRejected:   "Rejected",
	StatusInProgress: "In Progress",
	StatusDelegated:  "Delegated",
}

var workflowStatusMap = map[string]string{
	StatusDraft:      "Draft Saved",
	StatusSubmitted:  "Submitted for Approval",
	StatusPending:    "Awaiting Approval",
	StatusApproved:   "Approved",
	StatusRejected:   "Rejected",
	StatusInProgress: "Processing",
	StatusDelegated:  "Delegated to Another Approver",
}

var workflowStepMap = map[string]string{
	StatusDraft:      "Draft Creation",
	StatusSubmitted:  "Manager Review",
	StatusPending:    "Finance Approval",
	StatusApproved:   "Completed",
	StatusRejected:   "Completed",
	StatusInProgress: "PO Generation",
	StatusDelegated:  "Delegated Review",
}

// StatusText returns the display label for a status value.
func StatusText(status string) string {
	if text, ok := statusTextMap[status]; ok {
		return text
	}
	return status
}

// WorkflowStatusText returns the workflow banner label for a status value.
func WorkflowStatusText(status string) string {
	if text, ok := workflowStatusMap[status]; ok {
		return text
	}
	return status
}

// WorkflowStepText returns the workflow step label for a status value.
func WorkflowStepText(status string) string {
	if text, ok := workflowStepMap[status]; ok {
		return text
	}
	return status
}
