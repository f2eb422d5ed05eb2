package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"shopcart/internal/repos"
)

// Seeded passwords must be stored hashed, never plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	tok := registerUser(t, app, "carol@example.com")

	// duplicate email rejected as a validation failure
	resp, body := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"name": "Carol Again", "email": "carol@example.com", "password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate email: want 422, got %d", resp.StatusCode)
	}
	if _, ok := body["errors"].(map[string]any)["email"]; !ok {
		t.Fatalf("want email error, got %v", body["errors"])
	}

	// bad password policy
	resp, _ = doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"name": "Weak", "email": "weak@example.com", "password": "short",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("weak password: want 422, got %d", resp.StatusCode)
	}

	// login works against the registered credentials
	resp, body = doJSON(t, app, "POST", "/auth/login", "", map[string]any{
		"email": "carol@example.com", "password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d (%v)", resp.StatusCode, body)
	}
	data := dataOf(t, body)
	if data["token_type"] != "bearer" || data["access_token"] == "" {
		t.Fatalf("bad token payload: %v", data)
	}

	// wrong password → 401
	resp, _ = doJSON(t, app, "POST", "/auth/login", "", map[string]any{
		"email": "carol@example.com", "password": "WrongPass1",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}

	// me resolves the token's user
	resp, body = doJSON(t, app, "GET", "/auth/me", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: want 200, got %d", resp.StatusCode)
	}
	user := dataOf(t, body)["user"].(map[string]any)
	if user["email"] != "carol@example.com" {
		t.Fatalf("wrong user: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	tok := registerUser(t, app, "dave@example.com")

	resp, _ := doJSON(t, app, "POST", "/auth/logout", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: want 200, got %d", resp.StatusCode)
	}

	// the token is dead now
	resp, _ = doJSON(t, app, "GET", "/auth/me", tok, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("revoked token: want 401, got %d", resp.StatusCode)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	app := newTestApp(t)
	tok := registerUser(t, app, "erin@example.com")

	resp, body := doJSON(t, app, "POST", "/auth/refresh", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: want 200, got %d", resp.StatusCode)
	}
	fresh, _ := dataOf(t, body)["access_token"].(string)
	if fresh == "" || fresh == tok {
		t.Fatal("refresh must mint a new token")
	}

	// old token revoked, new one valid
	resp, _ = doJSON(t, app, "GET", "/auth/me", tok, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old token: want 401, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "GET", "/auth/me", fresh, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new token: want 200, got %d", resp.StatusCode)
	}
}
