package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog and users if DB is empty (idempotent; safe to run
	// on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active);

-- Carts: one 'active' row per user, enforced by the partial index
CREATE TABLE IF NOT EXISTS carts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','checked_out','abandoned')),
  total_amount NUMERIC NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_active ON carts(user_id) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS cart_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_id    INTEGER NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE (cart_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id);
CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id);

-- Revoked bearer tokens (logout / refresh)
CREATE TABLE IF NOT EXISTS revoked_tokens(
  jti TEXT PRIMARY KEY,
  expires_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(name,description,price,stock,is_active) VALUES
	  ('Mechanical Keyboard','87-key hot-swappable board',89.99,25,1),
	  ('USB-C Dock','Dual HDMI, 100W passthrough',129.00,10,1),
	  ('Laptop Stand','Aluminium, foldable',34.50,40,1),
	  ('Legacy Webcam','Discontinued model',19.99,5,0)`)

	return tx.Commit()
}

// seedUsers ensures a demo user exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	h, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	if err != nil {
		return err
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(name,email,password_hash)
		VALUES(?,?,?)
		ON CONFLICT(email) DO NOTHING
	`, "Demo User", "demo@shopcart.test", string(h)); err != nil {
		return err
	}

	return tx.Commit()
}
