package model

import (
	"github.com/shopspring/decimal"
)

type Service struct {
	Base
	Name     string          `db:"name" json:"name"`
	Value    decimal.Decimal `db:"value" json:"value"`
	Duration int             `db:"duration" json:"duration"` // in minutes
}

type CreateServiceRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	Duration int             `json:"duration" binding:"required,gte=1"`
}

type UpdateServiceRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	Duration int             `json:"duration" binding:"required,gte=1"`
}
