package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestCartRequiresToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/cart", "/cart/count"} {
		resp, body := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: want 401, got %d", path, resp.StatusCode)
		}
		if body["success"] != false || body["message"] != "Unauthenticated. Please provide a valid token." {
			t.Fatalf("%s: wrong 401 body: %v", path, body)
		}
	}

	// garbage token is rejected the same way
	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req, 15000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for bad token, got %d", resp.StatusCode)
	}
}

func TestCartEmptyPayload(t *testing.T) {
	app := newTestApp(t)
	tok := registerUser(t, app, "empty@example.com")

	resp, body := doJSON(t, app, "GET", "/cart", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for empty cart, got %d", resp.StatusCode)
	}
	if body["message"] != "Your cart is empty" {
		t.Fatalf("wrong message: %v", body["message"])
	}
	data := dataOf(t, body)
	if data["cart"] != nil {
		t.Fatalf("want null cart, got %v", data["cart"])
	}
	if data["total_amount"] != "0.00" {
		t.Fatalf("want total_amount \"0.00\", got %v", data["total_amount"])
	}
	if items, ok := data["items"].([]any); !ok || len(items) != 0 {
		t.Fatalf("want empty items array, got %v", data["items"])
	}
}

func TestCartLifecycle(t *testing.T) {
	app := newTestApp(t)
	tok := registerUser(t, app, "flow@example.com")

	// seeded product 1: Mechanical Keyboard, 89.99, stock 25
	resp, body := doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 1, "quantity": 2})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: want 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["message"] != "Product added to cart successfully" {
		t.Fatalf("wrong add message: %v", body["message"])
	}
	item := dataOf(t, body)["cart_item"].(map[string]any)
	itemID := int(item["id"].(float64))
	if item["quantity"].(float64) != 2 {
		t.Fatalf("want quantity 2, got %v", item["quantity"])
	}

	// same product again merges the line
	resp, body = doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 1, "quantity": 1})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("re-add: want 201, got %d", resp.StatusCode)
	}
	if body["message"] != "Product quantity updated in cart successfully" {
		t.Fatalf("wrong merge message: %v", body["message"])
	}

	// second product
	resp, _ = doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 3, "quantity": 4})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("second product: want 201, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, "GET", "/cart", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view: want 200, got %d", resp.StatusCode)
	}
	data := dataOf(t, body)
	if data["total_items"].(float64) != 7 {
		t.Fatalf("want 7 total items, got %v", data["total_items"])
	}
	if len(data["items"].([]any)) != 2 {
		t.Fatalf("want 2 lines, got %v", data["items"])
	}

	resp, body = doJSON(t, app, "GET", "/cart/count", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("count: want 200, got %d", resp.StatusCode)
	}
	data = dataOf(t, body)
	if data["count"].(float64) != 2 || data["total_items"].(float64) != 7 {
		t.Fatalf("bad count payload: %v", data)
	}

	// update the first line
	resp, body = doJSON(t, app, "PUT", "/cart/items/"+strconv.Itoa(itemID), tok, map[string]any{"quantity": 5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: want 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["message"] != "Cart item updated successfully" {
		t.Fatalf("wrong update message: %v", body["message"])
	}

	// remove it
	resp, body = doJSON(t, app, "DELETE", "/cart/items/"+strconv.Itoa(itemID), tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove: want 200, got %d", resp.StatusCode)
	}
	if body["message"] != "Item removed from cart successfully" {
		t.Fatalf("wrong remove message: %v", body["message"])
	}

	// clear what's left
	resp, body = doJSON(t, app, "DELETE", "/cart/clear", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear: want 200, got %d", resp.StatusCode)
	}
	cart := dataOf(t, body)["cart"].(map[string]any)
	if cart["total_amount"] != "0" && cart["total_amount"] != "0.00" {
		t.Fatalf("want zero total after clear, got %v", cart["total_amount"])
	}
}

func TestCartValidationAndBusinessErrors(t *testing.T) {
	app := newTestApp(t)
	tok := registerUser(t, app, "errors@example.com")

	// missing quantity
	resp, body := doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 1})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("missing quantity: want 422, got %d", resp.StatusCode)
	}
	if body["message"] != "Validation failed" {
		t.Fatalf("wrong validation message: %v", body["message"])
	}

	// zero quantity
	resp, _ = doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 1, "quantity": 0})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("zero quantity: want 422, got %d", resp.StatusCode)
	}

	// unknown product is a validation failure, not a 404
	resp, body = doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 9999, "quantity": 1})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unknown product: want 422, got %d", resp.StatusCode)
	}
	errs := body["errors"].(map[string]any)
	if _, ok := errs["product_id"]; !ok {
		t.Fatalf("want product_id error, got %v", errs)
	}

	// inactive product (seeded Legacy Webcam, id 4)
	resp, body = doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 4, "quantity": 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("inactive product: want 400, got %d", resp.StatusCode)
	}
	if body["message"] != "Product is not available" {
		t.Fatalf("wrong message: %v", body["message"])
	}

	// over stock (seeded USB-C Dock, id 2, stock 10)
	resp, body = doJSON(t, app, "POST", "/cart/add", tok, map[string]any{"product_id": 2, "quantity": 11})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("over stock: want 400, got %d", resp.StatusCode)
	}
	if body["message"] != "Insufficient stock available. Only 10 items in stock." {
		t.Fatalf("wrong stock message: %v", body["message"])
	}

	// unknown item id on update/remove
	resp, body = doJSON(t, app, "PUT", "/cart/items/424242", tok, map[string]any{"quantity": 1})
	if resp.StatusCode != http.StatusNotFound || body["message"] != "Cart item not found" {
		t.Fatalf("unknown item update: want 404, got %d (%v)", resp.StatusCode, body)
	}
	resp, _ = doJSON(t, app, "DELETE", "/cart/items/424242", tok, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown item remove: want 404, got %d", resp.StatusCode)
	}

	// clear with no cart
	resp, body = doJSON(t, app, "DELETE", "/cart/clear", tok, nil)
	if resp.StatusCode != http.StatusNotFound || body["message"] != "No active cart found" {
		t.Fatalf("clear without cart: want 404, got %d (%v)", resp.StatusCode, body)
	}
}

func TestCartItemsAreOwnerScoped(t *testing.T) {
	app := newTestApp(t)
	alice := registerUser(t, app, "alice@example.com")
	bob := registerUser(t, app, "bob@example.com")

	_, body := doJSON(t, app, "POST", "/cart/add", alice, map[string]any{"product_id": 1, "quantity": 1})
	itemID := int(dataOf(t, body)["cart_item"].(map[string]any)["id"].(float64))

	resp, _ := doJSON(t, app, "PUT", "/cart/items/"+strconv.Itoa(itemID), bob, map[string]any{"quantity": 2})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user update: want 404, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "DELETE", "/cart/items/"+strconv.Itoa(itemID), bob, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user remove: want 404, got %d", resp.StatusCode)
	}
}

