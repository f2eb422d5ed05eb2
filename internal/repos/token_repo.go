package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// TokenRepo tracks revoked bearer-token ids so logout and refresh actually
// invalidate the old token before it expires.
type TokenRepo struct{ db *sqlx.DB }

func NewTokenRepo(db *sqlx.DB) *TokenRepo { return &TokenRepo{db: db} }

func (r *TokenRepo) Revoke(jti string, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO revoked_tokens(jti, expires_at) VALUES(?, ?)
		ON CONFLICT(jti) DO NOTHING
	`, jti, expiresAt.UTC().Format(time.RFC3339))
	return err
}

func (r *TokenRepo) IsRevoked(jti string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM revoked_tokens WHERE jti=?`, jti); err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired drops denylist rows for tokens that are past expiry anyway.
func (r *TokenRepo) PurgeExpired() error {
	_, err := r.db.Exec(`DELETE FROM revoked_tokens WHERE expires_at < ?`, time.Now().UTC().Format(time.RFC3339))
	return err
}
