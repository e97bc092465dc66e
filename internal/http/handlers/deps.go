package handlers

import (
	"github.com/jmoiron/sqlx"

	"bludify/internal/config"
	"bludify/internal/content"
	"bludify/internal/repos"
	"bludify/internal/services"
	"bludify/internal/theme"
)

type Deps struct {
	PageHandler        *PageHandler
	MarketplaceHandler *MarketplaceHandler
	ListingHandler     *ListingHandler
	Theme              theme.Toggler
}

func NewDeps(db *sqlx.DB, cfg config.Config, site *content.Site) (*Deps, error) {
	prodRepo := repos.NewProductRepo(db)
	listingRepo := repos.NewListingRepo(db)

	catalogSvc, err := services.NewCatalogService(prodRepo)
	if err != nil {
		return nil, err
	}
	listingSvc := services.NewListingService(listingRepo, site)

	return &Deps{
		PageHandler:        &PageHandler{Site: site, Catalog: catalogSvc},
		MarketplaceHandler: &MarketplaceHandler{Catalog: catalogSvc},
		ListingHandler:     &ListingHandler{Listings: listingSvc, Site: site},
		Theme:              theme.Toggler{Secure: cfg.CookieSecure},
	}, nil
}
