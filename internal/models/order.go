package models

import "time"

// Order is a print job sold to a client. Totals are aggregates maintained at
// write time; readers trust TotalAmount rather than re-summing items.
type Order struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex" json:"order_number"`
	ClientName  string      `gorm:"not null;index" json:"client_name"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	AmountPaid  float64     `json:"amount_paid"`
	Balance     float64     `json:"balance"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      string  `gorm:"not null;index;size:36" json:"order_id"`
	ItemName     string  `gorm:"not null" json:"item_name"`
	CategoryName string  `json:"category_name"`
	Size         string  `json:"size"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	TotalAmount  float64 `gorm:"not null" json:"total_amount"`
}
