package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Market statuses as reported by the backend.
const (
	MarketStatusPending   = "pending"
	MarketStatusActive    = "active"
	MarketStatusClosed    = "closed"
	MarketStatusResolved  = "resolved"
	MarketStatusCancelled = "cancelled"
)

type Market struct {
	ID             ID              `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	ImageURL       string          `json:"image_url"`
	StartTime      *time.Time      `json:"start_time"`
	EndTime        *time.Time      `json:"end_time"`
	ResolutionTime *time.Time      `json:"resolution_time"`
	Status         string          `json:"status"`
	TotalVolume    decimal.Decimal `json:"total_volume"`
	CreatedBy      ID              `json:"created_by"`
	ResolvedBy     *ID             `json:"resolved_by"`
	WinningOutcome *ID             `json:"winning_outcome"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Outcomes       []Outcome       `json:"outcomes,omitempty"`
}

// Outcome is one tradable answer of a market. CurrentPrice lies in [0, 1].
type Outcome struct {
	ID           ID              `json:"id"`
	MarketID     ID              `json:"market_id"`
	OutcomeName  string          `json:"outcome_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	TotalShares  decimal.Decimal `json:"total_shares"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
}

type MarketListResponse struct {
	Markets []Market `json:"markets"`
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
}

type MarketResponse struct {
	Market *Market `json:"market"`
}
