package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"shopcart/internal/domain"
)

// CartRepo owns all cart mutations. Every mutating method runs as one
// transaction: validate, mutate, recompute the cart total, commit. Nothing
// is ever persisted when any step fails.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, user_id, status, total_amount, created_at, COALESCE(updated_at,'') AS updated_at`
const itemCols = `id, cart_id, product_id, user_id, quantity, unit_price, line_total, created_at, COALESCE(updated_at,'') AS updated_at`

// AddItem adds qty of a product to the user's active cart, creating the
// cart and the line as needed. The stock check is incremental: quantity
// already in the cart counts against available stock. Returns the cart,
// the affected item (product loaded) and whether the line was newly
// created.
func (r *CartRepo) AddItem(userID, productID int64, qty int) (*domain.Cart, *domain.CartItem, bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := getProduct(tx, productID)
	if err != nil {
		return nil, nil, false, err
	}
	if !p.IsActive {
		return nil, nil, false, domain.ErrProductUnavailable
	}
	if p.Stock < qty {
		return nil, nil, false, &domain.InsufficientStockError{Available: p.Stock}
	}

	cart, err := getOrCreateActiveCart(tx, userID)
	if err != nil {
		return nil, nil, false, err
	}

	var item domain.CartItem
	created := false
	err = tx.Get(&item, `SELECT `+itemCols+` FROM cart_items WHERE cart_id=? AND product_id=?`, cart.ID, productID)
	switch {
	case err == nil:
		newQty := item.Quantity + qty
		if p.Stock < newQty {
			return nil, nil, false, &domain.InsufficientStockError{Available: p.Stock, InCart: item.Quantity}
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(newQty)))
		if _, err := tx.Exec(`
			UPDATE cart_items SET quantity=?, line_total=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
		`, newQty, lineTotal, item.ID); err != nil {
			return nil, nil, false, err
		}
	case errors.Is(err, sql.ErrNoRows):
		created = true
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		if _, err := tx.Exec(`
			INSERT INTO cart_items(cart_id, product_id, user_id, quantity, unit_price, line_total)
			VALUES (?, ?, ?, ?, ?, ?)
		`, cart.ID, productID, userID, qty, p.Price, lineTotal); err != nil {
			return nil, nil, false, err
		}
	default:
		return nil, nil, false, err
	}

	if err := recomputeTotal(tx, cart); err != nil {
		return nil, nil, false, err
	}
	if err := tx.Get(&item, `SELECT `+itemCols+` FROM cart_items WHERE cart_id=? AND product_id=?`, cart.ID, productID); err != nil {
		return nil, nil, false, err
	}
	item.Product = p

	if err := tx.Commit(); err != nil {
		return nil, nil, false, err
	}
	return cart, &item, created, nil
}

// UpdateItemQuantity replaces the quantity of a line the user owns. The
// stock check here is absolute (against the requested quantity alone) and
// the line total comes from the stored unit price, not the live product
// price.
func (r *CartRepo) UpdateItemQuantity(userID, itemID int64, qty int) (*domain.Cart, *domain.CartItem, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var item domain.CartItem
	if err := tx.Get(&item, `SELECT `+itemCols+` FROM cart_items WHERE id=? AND user_id=?`, itemID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrCartItemNotFound
		}
		return nil, nil, err
	}

	p, err := getProduct(tx, item.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if p.Stock < qty {
		return nil, nil, &domain.InsufficientStockError{Available: p.Stock}
	}

	item.Quantity = qty
	item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	if _, err := tx.Exec(`
		UPDATE cart_items SET quantity=?, line_total=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, item.Quantity, item.LineTotal, item.ID); err != nil {
		return nil, nil, err
	}

	var cart domain.Cart
	if err := tx.Get(&cart, `SELECT `+cartCols+` FROM carts WHERE id=?`, item.CartID); err != nil {
		return nil, nil, err
	}
	if err := recomputeTotal(tx, &cart); err != nil {
		return nil, nil, err
	}
	item.Product = p

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &cart, &item, nil
}

// RemoveItem deletes a line the user owns and refreshes the parent cart
// total. A missing parent cart is skipped, not treated as an error.
func (r *CartRepo) RemoveItem(userID, itemID int64) (*domain.Cart, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var item domain.CartItem
	if err := tx.Get(&item, `SELECT `+itemCols+` FROM cart_items WHERE id=? AND user_id=?`, itemID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, err
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE id=?`, item.ID); err != nil {
		return nil, err
	}

	var cart *domain.Cart
	var c domain.Cart
	err = tx.Get(&c, `SELECT `+cartCols+` FROM carts WHERE id=?`, item.CartID)
	switch {
	case err == nil:
		if err := recomputeTotal(tx, &c); err != nil {
			return nil, err
		}
		cart = &c
	case errors.Is(err, sql.ErrNoRows):
		// cart already gone; nothing left to update
	default:
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes every line in the user's active cart and zeroes the total.
// The cart row itself survives.
func (r *CartRepo) Clear(userID int64) (*domain.Cart, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var cart domain.Cart
	if err := tx.Get(&cart, `SELECT `+cartCols+` FROM carts WHERE user_id=? AND status='active'`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoActiveCart
		}
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id=?`, cart.ID); err != nil {
		return nil, err
	}
	cart.TotalAmount = decimal.Zero
	if _, err := tx.Exec(`UPDATE carts SET total_amount=0, updated_at=CURRENT_TIMESTAMP WHERE id=?`, cart.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ActiveWithItems loads the user's active cart with its items and their
// products. A (nil, nil, nil) return means the user has no active cart.
func (r *CartRepo) ActiveWithItems(userID int64) (*domain.Cart, []domain.CartItem, error) {
	var cart domain.Cart
	err := r.db.Get(&cart, `SELECT `+cartCols+` FROM carts WHERE user_id=? AND status='active'`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	items := []domain.CartItem{}
	if err := r.db.Select(&items, `SELECT `+itemCols+` FROM cart_items WHERE cart_id=? ORDER BY id`, cart.ID); err != nil {
		return nil, nil, err
	}
	for i := range items {
		p, err := getProduct(r.db, items[i].ProductID)
		if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
			return nil, nil, err
		}
		if err == nil {
			items[i].Product = p
		}
	}
	return &cart, items, nil
}

// Count returns the number of lines and the summed quantity in the user's
// active cart; zeros when no active cart exists.
func (r *CartRepo) Count(userID int64) (count, totalItems int, err error) {
	var cartID int64
	err = r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id=? AND status='active'`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	row := struct {
		Count      int `db:"count"`
		TotalItems int `db:"total_items"`
	}{}
	err = r.db.Get(&row, `
		SELECT COUNT(*) AS count, COALESCE(SUM(quantity),0) AS total_items
		FROM cart_items WHERE cart_id=?
	`, cartID)
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.TotalItems, nil
}

func getProduct(q sqlx.Queryer, id int64) (*domain.Product, error) {
	var p domain.Product
	err := sqlx.Get(q, &p, `
		SELECT id, name, COALESCE(description,'') AS description, price, stock, is_active,
		       created_at, COALESCE(updated_at,'') AS updated_at
		FROM products WHERE id=?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getOrCreateActiveCart(tx *sqlx.Tx, userID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := tx.Get(&cart, `SELECT `+cartCols+` FROM carts WHERE user_id=? AND status='active'`, userID)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO carts(user_id, status, total_amount) VALUES (?, 'active', 0)`, userID); err != nil {
		// A concurrent request may have won the partial unique index race;
		// the row is there either way.
		if gerr := tx.Get(&cart, `SELECT `+cartCols+` FROM carts WHERE user_id=? AND status='active'`, userID); gerr == nil {
			return &cart, nil
		}
		return nil, err
	}
	if err := tx.Get(&cart, `SELECT `+cartCols+` FROM carts WHERE user_id=? AND status='active'`, userID); err != nil {
		return nil, err
	}
	return &cart, nil
}

// recomputeTotal resets cart.total_amount to the sum of its line totals
// and mirrors the new value on the passed struct.
func recomputeTotal(tx *sqlx.Tx, cart *domain.Cart) error {
	var total decimal.Decimal
	if err := tx.Get(&total, `SELECT COALESCE(SUM(line_total),0) FROM cart_items WHERE cart_id=?`, cart.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE carts SET total_amount=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, total, cart.ID); err != nil {
		return err
	}
	cart.TotalAmount = total
	return nil
}
