package repos

import (
	"shopcart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, name, email, password_hash, created_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(name, email, hash string) (*domain.User, error) {
	res, err := r.DB.Exec(`INSERT INTO users(name,email,password_hash) VALUES(?,?,?)`, name, email, hash)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.ByID(id)
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return false, err
	}
	return n > 0, nil
}
