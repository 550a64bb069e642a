package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusComplete   OrderStatus = "COMPLETE"
	StatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentVoided            PaymentStatus = "VOIDED"
)

type Customer struct {
	Email     string
	FirstName string
	LastName  string
}

type Order struct {
	ID   int
	GUID uuid.UUID

	Customer        Customer
	LanguageCulture string
	CurrencyCode    string
	Total           decimal.Decimal

	PaymentStatus PaymentStatus
	OrderStatus   OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
