package services

import (
	"github.com/shopspring/decimal"

	"shopcart/internal/domain"
	"shopcart/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// AddResult reports the outcome of an add: Created distinguishes a new
// line from a quantity merge so the handler can pick the right message.
type AddResult struct {
	Cart    *domain.Cart
	Item    *domain.CartItem
	Created bool
}

func (s *CartService) Add(userID, productID int64, qty int) (AddResult, error) {
	cart, item, created, err := s.Carts.AddItem(userID, productID, qty)
	if err != nil {
		return AddResult{}, err
	}
	return AddResult{Cart: cart, Item: item, Created: created}, nil
}

// CartView is the get-cart payload. Cart stays nil for the empty-cart case.
type CartView struct {
	Cart        *domain.Cart
	Items       []domain.CartItem
	TotalItems  int
	TotalAmount decimal.Decimal
}

func (s *CartService) View(userID int64) (CartView, error) {
	cart, items, err := s.Carts.ActiveWithItems(userID)
	if err != nil {
		return CartView{}, err
	}
	if cart == nil {
		return CartView{Items: []domain.CartItem{}, TotalAmount: decimal.Zero}, nil
	}
	totalItems := 0
	for _, it := range items {
		totalItems += it.Quantity
	}
	return CartView{Cart: cart, Items: items, TotalItems: totalItems, TotalAmount: cart.TotalAmount}, nil
}

type UpdateResult struct {
	Cart *domain.Cart
	Item *domain.CartItem
}

func (s *CartService) UpdateItem(userID, itemID int64, qty int) (UpdateResult, error) {
	cart, item, err := s.Carts.UpdateItemQuantity(userID, itemID, qty)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Cart: cart, Item: item}, nil
}

func (s *CartService) RemoveItem(userID, itemID int64) (*domain.Cart, error) {
	return s.Carts.RemoveItem(userID, itemID)
}

func (s *CartService) Clear(userID int64) (*domain.Cart, error) {
	return s.Carts.Clear(userID)
}

func (s *CartService) Count(userID int64) (count, totalItems int, err error) {
	return s.Carts.Count(userID)
}
