package entity

import (
	"RomiioBot/pkg/catalog"
	"time"
)

type BookingStatus string

const (
	BookingStatusAwaitingPayment BookingStatus = "awaiting_payment"
	BookingStatusVerifying       BookingStatus = "verifying"
	BookingStatusConfirmed       BookingStatus = "confirmed"
)

// Booking is the record kept for a booking once its details are captured.
type Booking struct {
	ID          string             `db:"id" json:"id"`
	CustomerID  string             `db:"customer_id" json:"customer_id"`
	Category    catalog.Category   `db:"category" json:"category"`
	PackageKey  catalog.PackageKey `db:"package_key" json:"package_key"`
	PackageName string             `db:"package_name" json:"package_name"`
	Price       string             `db:"price" json:"price"`
	Info        BookingInfo        `db:"-" json:"info"`
	Status      BookingStatus      `db:"status" json:"status"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}
