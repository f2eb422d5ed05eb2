package services

import (
	"github.com/shopspring/decimal"

	"shopcart/internal/domain"
	"shopcart/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts(page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListActive(pageSize, offset)
}

func (s *CatalogService) GetProduct(id int64) (*domain.Product, error) {
	return s.Prods.Get(id)
}

type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsActive    bool
}

func (s *CatalogService) CreateProduct(p NewProduct) (*domain.Product, error) {
	return s.Prods.Create(p.Name, p.Description, p.Price, p.Stock, p.IsActive)
}
