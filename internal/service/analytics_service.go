package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// AnalyticsService is a stateless read-side projection over the purchase
// request collection. It keeps no state of its own and persists nothing.
type AnalyticsService interface {
	Snapshot(ctx context.Context, period string, from, to time.Time) (model.AnalyticsReport, error)
}

type analyticsService struct {
	repo *repository.PurchaseRequestRepository
	now  func() time.Time
}

// AnalyticsOption configures an analytics service.
type AnalyticsOption func(*analyticsService)

// WithAnalyticsClock overrides the time source for tests.
func WithAnalyticsClock(now func() time.Time) AnalyticsOption {
	return func(s *analyticsService) { s.now = now }
}

func NewAnalyticsService(repo *repository.PurchaseRequestRepository, opts ...AnalyticsOption) AnalyticsService {
	s := &analyticsService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot aggregates the collection over the resolved time window. Records
// are bucketed by their creation date.
func (s *analyticsService) Snapshot(ctx context.Context, period string, from, to time.Time) (model.AnalyticsReport, error) {
	now := s.now()

	resolvedFrom, resolvedTo, err := resolvePeriod(period, from, to, now)
	if err != nil {
		return model.AnalyticsReport{}, err
	}

	var inWindow []model.PurchaseRequest
	for _, pr := range s.repo.List() {
		if pr.CreationDate.Before(resolvedFrom) || pr.CreationDate.After(resolvedTo) {
			continue
		}
		inWindow = append(inWindow, pr)
	}

	report := model.AnalyticsReport{
		Period:      period,
		DateFrom:    resolvedFrom,
		DateTo:      resolvedTo,
		LastUpdated: now,
		KPIs:        computeKPIs(inWindow),
		Charts: model.AnalyticsCharts{
			MonthlySpend:    monthlySpend(inWindow),
			DepartmentSpend: departmentSpend(inWindow),
			StatusCounts:    statusCounts(inWindow),
			TopSuppliers:    topSuppliers(inWindow, 5),
		},
	}
	return report, nil
}

// resolvePeriod turns a period name into a concrete [from, to] window ending
// now. CUSTOM requires explicit bounds; unknown names fall back to the last
// 30 days.
func resolvePeriod(period string, from, to, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case model.PeriodCustom:
		if from.IsZero() || to.IsZero() {
			return time.Time{}, time.Time{}, fmt.Errorf("custom period requires from and to dates")
		}
		return from, to, nil
	case model.PeriodLast7Days:
		return now.AddDate(0, 0, -7), now, nil
	case model.PeriodThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now, nil
	case model.PeriodLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -1, 0), first.Add(-time.Nanosecond), nil
	case model.PeriodThisQuarter:
		return now.AddDate(0, -3, 0), now, nil
	case model.PeriodLastQuarter:
		return now.AddDate(0, -6, 0), now.AddDate(0, -3, 0), nil
	case model.PeriodThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), now, nil
	case model.PeriodLast30Days, "":
		return now.AddDate(0, 0, -30), now, nil
	default:
		return now.AddDate(0, 0, -30), now, nil
	}
}

// computeKPIs derives the headline numbers. Total spend covers everything not
// rejected; cost savings is the rejected amount, the spend averted by review.
func computeKPIs(prs []model.PurchaseRequest) model.AnalyticsKPIs {
	kpis := model.AnalyticsKPIs{
		TotalSpend:  decimal.Zero,
		CostSavings: decimal.Zero,
	}

	approved, rejected := 0, 0
	totalDays := 0
	for _, pr := range prs {
		if pr.Status == model.StatusRejected {
			kpis.CostSavings = kpis.CostSavings.Add(pr.TotalAmount)
			rejected++
			totalDays += processingDays(pr)
			continue
		}
		kpis.TotalSpend = kpis.TotalSpend.Add(pr.TotalAmount)
		if pr.Status == model.StatusApproved {
			approved++
			totalDays += processingDays(pr)
		}
	}

	processed := approved + rejected
	if processed > 0 {
		kpis.ApprovalRate = int(math.Round(float64(approved) / float64(processed) * 100))
		kpis.AvgProcessingTimeDays = math.Round(float64(totalDays)/float64(processed)*10) / 10
	}
	return kpis
}

func monthlySpend(prs []model.PurchaseRequest) []model.MonthlyAmount {
	type bucket struct {
		start time.Time
		sum   decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, pr := range prs {
		key := pr.CreationDate.Format("Jan 2006")
		b, ok := buckets[key]
		if !ok {
			start := time.Date(pr.CreationDate.Year(), pr.CreationDate.Month(), 1, 0, 0, 0, 0, pr.CreationDate.Location())
			b = &bucket{start: start, sum: decimal.Zero}
			buckets[key] = b
		}
		b.sum = b.sum.Add(pr.TotalAmount)
	}

	out := make([]model.MonthlyAmount, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, model.MonthlyAmount{Month: key, Amount: b.sum})
	}
	starts := make(map[string]time.Time, len(buckets))
	for key, b := range buckets {
		starts[key] = b.start
	}
	sort.Slice(out, func(i, j int) bool {
		return starts[out[i].Month].Before(starts[out[j].Month])
	})
	return out
}

func departmentSpend(prs []model.PurchaseRequest) []model.DepartmentAmount {
	sums := make(map[string]decimal.Decimal)
	for _, pr := range prs {
		if pr.Department == "" {
			continue
		}
		sums[pr.Department] = sums[pr.Department].Add(pr.TotalAmount)
	}

	out := make([]model.DepartmentAmount, 0, len(sums))
	for dept, sum := range sums {
		out = append(out, model.DepartmentAmount{Department: dept, Amount: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

func statusCounts(prs []model.PurchaseRequest) []model.StatusCount {
	counts := make(map[string]int)
	for _, pr := range prs {
		counts[model.StatusText(pr.Status)]++
	}

	out := make([]model.StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, model.StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func topSuppliers(prs []model.PurchaseRequest, limit int) []model.SupplierAmount {
	sums := make(map[string]decimal.Decimal)
	for _, pr := range prs {
		if pr.Supplier == "" {
			continue
		}
		sums[pr.Supplier] = sums[pr.Supplier].Add(pr.TotalAmount)
	}

	out := make([]model.SupplierAmount, 0, len(sums))
	for supplier, sum := range sums {
		out = append(out, model.SupplierAmount{Supplier: supplier, Amount: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
