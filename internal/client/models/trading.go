package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// Order statuses as reported by the backend.
const (
	OrderStatusPending         = "pending"
	OrderStatusFilled          = "filled"
	OrderStatusPartiallyFilled = "partially_filled"
	OrderStatusCancelled       = "cancelled"
)

// OrderSpec is the body of an order-creation request.
type OrderSpec struct {
	MarketID  ID              `json:"market_id"`
	OutcomeID ID              `json:"outcome_id"`
	OrderType OrderType       `json:"order_type"`
	Shares    decimal.Decimal `json:"shares"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID        ID              `json:"id"`
	UserID    ID              `json:"user_id"`
	MarketID  ID              `json:"market_id"`
	OutcomeID ID              `json:"outcome_id"`
	OrderType OrderType       `json:"order_type"`
	Shares    decimal.Decimal `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Status    string          `json:"status"`
	FilledAt  *time.Time      `json:"filled_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Market    *Market         `json:"market,omitempty"`
	Outcome   *Outcome        `json:"outcome,omitempty"`
}

type Position struct {
	ID        ID              `json:"id"`
	UserID    ID              `json:"user_id"`
	MarketID  ID              `json:"market_id"`
	OutcomeID ID              `json:"outcome_id"`
	Shares    decimal.Decimal `json:"shares"`
	AvgPrice  decimal.Decimal `json:"avg_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Market    *Market         `json:"market,omitempty"`
	Outcome   *Outcome        `json:"outcome,omitempty"`
}

// Cost is the amount paid for the position at its average price.
func (p Position) Cost() decimal.Decimal {
	return p.Shares.Mul(p.AvgPrice)
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}

type PositionListResponse struct {
	Positions []Position `json:"positions"`
}
