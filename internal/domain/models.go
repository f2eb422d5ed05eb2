package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	UpdatedAt   string          `db:"updated_at" json:"updated_at,omitempty"`
}

// Cart is the single active cart per user. TotalAmount is kept equal to the
// sum of its items' line totals after every committed operation.
type Cart struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Status      string          `db:"status" json:"status"` // active | checked_out | abandoned
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	UpdatedAt   string          `db:"updated_at" json:"updated_at,omitempty"`
}

type CartItem struct {
	ID        int64           `db:"id" json:"id"`
	CartID    int64           `db:"cart_id" json:"cart_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"` // snapshot from first add
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
	CreatedAt string          `db:"created_at" json:"created_at"`
	UpdatedAt string          `db:"updated_at" json:"updated_at,omitempty"`

	Product *Product `db:"-" json:"product,omitempty"`
}
