package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopcart/internal/config"
	"shopcart/internal/repos"
	"shopcart/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	tokenRepo := repos.NewTokenRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)

	authSvc := &services.AuthService{
		Users:  userRepo,
		Tokens: tokenRepo,
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTTTL,
	}
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo)

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
	}
}
