package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Analytics period enum constants
const (
	PeriodLast7Days   = "LAST_7_DAYS"
	PeriodLast30Days  = "LAST_30_DAYS"
	PeriodThisMonth   = "THIS_MONTH"
	PeriodLastMonth   = "LAST_MONTH"
	PeriodThisQuarter = "THIS_QUARTER"
	PeriodLastQuarter = "LAST_QUARTER"
	PeriodThisYear    = "THIS_YEAR"
	PeriodCustom      = "CUSTOM"
)

// AnalyticsKPIs are the headline numbers for a period.
type AnalyticsKPIs struct {
	TotalSpend            decimal.Decimal `json:"total_spend"`
	AvgProcessingTimeDays float64         `json:"avg_processing_time_days"`
	ApprovalRate          int             `json:"approval_rate"`
	CostSavings           decimal.Decimal `json:"cost_savings"`
}

// MonthlyAmount is one month bucket of summed spend.
type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// DepartmentAmount is one department bucket of summed spend.
type DepartmentAmount struct {
	Department string          `json:"department"`
	Amount     decimal.Decimal `json:"amount"`
}

// StatusCount is one status bucket with its record count.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// SupplierAmount is one supplier bucket of summed spend.
type SupplierAmount struct {
	Supplier string          `json:"supplier"`
	Amount   decimal.Decimal `json:"amount"`
}

// AnalyticsCharts are the grouped projections for a period.
type AnalyticsCharts struct {
	MonthlySpend    []MonthlyAmount    `json:"monthly_spend"`
	DepartmentSpend []DepartmentAmount `json:"department_spend"`
	StatusCounts    []StatusCount      `json:"pr_status"`
	TopSuppliers    []SupplierAmount   `json:"top_suppliers"`
}

// AnalyticsReport is a stateless read-side projection over the purchase
// request collection for one time window.
type AnalyticsReport struct {
	Period      string          `json:"period"`
	DateFrom    time.Time       `json:"date_from"`
	DateTo      time.Time       `json:"date_to"`
	LastUpdated time.Time       `json:"last_updated"`
	KPIs        AnalyticsKPIs   `json:"kpis"`
	Charts      AnalyticsCharts `json:"charts"`
}
