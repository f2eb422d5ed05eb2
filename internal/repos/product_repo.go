package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"shopcart/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, COALESCE(description,'') AS description, price, stock, is_active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) ListActive(limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE is_active = 1
	  ORDER BY created_at DESC, id DESC
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ProductRepo) Get(id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(name, description string, price decimal.Decimal, stock int, isActive bool) (*domain.Product, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, description, price, stock, is_active)
	  VALUES (?, ?, ?, ?, ?)
	`, name, description, price, stock, isActive)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}
