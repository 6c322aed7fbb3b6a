package repository

import (
	"fmt"
	"math/rand"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// Demo dimension values for the seeded collection.
var (
	seedStatuses    = []string{model.StatusSubmitted, model.StatusPending, model.StatusApproved, model.StatusRejected, model.StatusInProgress, model.StatusDraft}
	seedPriorities  = []string{model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent}
	seedTypes       = []string{model.PRTypeGoods, model.PRTypeServices, model.PRTypeCapex, model.PRTypeOpex}
	seedDepartments = []string{"IT", "HR", "Finance", "Marketing", "Operations", "Procurement"}
	seedRequestors  = []string{"John Smith", "Emma Johnson", "Michael Brown", "Sarah Davis", "Robert Wilson"}
	seedTitles      = []string{"Manager", "Director", "Senior Analyst", "Team Lead", "Specialist"}
	seedSuppliers   = []string{"Tech Supplies Inc.", "Office Solutions Co.", "Global Electronics", "Prime Logistics Ltd.", "Apex Industrial"}
)

// seedPurchaseRequests generates the demo collection used when the store is
// empty. The generator is seeded with a constant so the shape is reproducible
// run to run; dates are relative to now. Real deployments disable seeding
// with SEED_ON_EMPTY=false.
func seedPurchaseRequests(now time.Time) []model.PurchaseRequest {
	rng := rand.New(rand.NewSource(1984))
	prs := make([]model.PurchaseRequest, 0, 15)

	for i := 1; i <= 15; i++ {
		status := seedStatuses[rng.Intn(len(seedStatuses))]
		priority := seedPriorities[rng.Intn(len(seedPriorities))]
		department := seedDepartments[rng.Intn(len(seedDepartments))]
		created := now.AddDate(0, 0, -rng.Intn(30))
		due := now.AddDate(0, 0, rng.Intn(14)-2)

		items := make([]model.LineItem, 0, 3)
		total := decimal.Zero
		for j := 0; j < rng.Intn(3)+1; j++ {
			qty := rng.Intn(10) + 1
			price := decimal.NewFromFloat(rng.Float64()*900 + 100).Round(2)
			line := model.LineItem{
				ItemCode:    fmt.Sprintf("ITM-%03d", rng.Intn(900)+100),
				Description: fmt.Sprintf("%s supplies", department),
				Quantity:    qty,
				UnitPrice:   price,
				Total:       price.Mul(decimal.NewFromInt(int64(qty))),
			}
			items = append(items, line)
			total = total.Add(line.Total)
		}

		pr := model.PurchaseRequest{
			ID:             fmt.Sprintf("pr_seed_%02d", i),
			PRNumber:       fmt.Sprintf("PR-%d-%05d", now.Year(), 1000+i),
			PRType:         seedTypes[rng.Intn(len(seedTypes))],
			Description:    fmt.Sprintf("Purchase request for %s department", department),
			Priority:       priority,
			Status:         status,
			StatusText:     model.StatusText(status),
			WorkflowStatus: model.WorkflowStatusText(status),
			WorkflowStep:   model.WorkflowStepText(status),
			TotalAmount:    total,
			Items:          items,
			CreationDate:   created,
			RequiredDate:   due,
			DueDate:        due,
			LastUpdated:    created,
			DueStatus:      model.DueStatusFor(now, due),
			DaysLeft:       model.DaysLeftFor(now, due),
			Department:     department,
			CostCenter:     fmt.Sprintf("CC-%03d", rng.Intn(1000)),
			Supplier:       seedSuppliers[rng.Intn(len(seedSuppliers))],
			CreatedBy:      fmt.Sprintf("User %d", rng.Intn(5)+1),
			Requestor:      seedRequestors[rng.Intn(len(seedRequestors))],
			RequestorTitle: seedTitles[rng.Intn(len(seedTitles))],
			CanApprove:     status == model.StatusSubmitted || status == model.StatusPending,
			TotalItems:     len(items),
			Comments:       []model.Comment{},
		}

		switch status {
		case model.StatusApproved:
			approvedAt := created
			pr.Approver = fmt.Sprintf("Manager %d", rng.Intn(3)+1)
			pr.ApprovalDate = &approvedAt
			pr.ApprovalComment = "Approved per policy"
		case model.StatusRejected:
			rejectedAt := created
			pr.Approver = fmt.Sprintf("Manager %d", rng.Intn(3)+1)
			pr.RejectionDate = &rejectedAt
			pr.RejectionComment = "Budget constraints"
		}

		if rng.Float64() > 0.8 {
			pr.Comments = append(pr.Comments, model.Comment{
				ID:        fmt.Sprintf("comment_seed_%02d", i),
				Comment:   "Please review budget",
				Commenter: "Finance",
				Timestamp: created,
				Type:      "APPROVAL_COMMENT",
			})
		}

		prs = append(prs, pr)
	}

	return prs
}
