package model

import (
	"github.com/shopspring/decimal"
)

// RevenueReport is the summed service value over an inclusive date range.
type RevenueReport struct {
	StartDate Date            `json:"start_date"`
	EndDate   Date            `json:"end_date"`
	Total     decimal.Decimal `json:"total"`
}

// CashFlowEntry is a derived (date, total) pair. It is produced only by
// aggregation and never persisted.
type CashFlowEntry struct {
	Date  Date            `db:"date" json:"date"`
	Total decimal.Decimal `db:"total" json:"total"`
}

type CashFlowReport struct {
	StartDate Date            `json:"start_date"`
	EndDate   Date            `json:"end_date"`
	Entries   []CashFlowEntry `json:"entries"`
}
