package domain

type User struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
