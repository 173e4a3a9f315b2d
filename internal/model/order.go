package model

import "time"

// Order is the authoritative order record: a flat row referencing the
// buyer and the product. Line items hang off it via OrderItem.
type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    uint        `json:"user_id" gorm:"index;not null"`
	ProductID uint        `json:"product_id" gorm:"index;not null"`
	Quantity  int         `json:"quantity"`
	Price     int         `json:"price"`
	Status    string      `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	Items     []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is a line item belonging to an Order
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Quantity  int       `json:"quantity"`
	Price     int       `json:"price"`
	Status    string    `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
