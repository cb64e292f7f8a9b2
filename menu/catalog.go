package menu

import (
	"context"
	"sync"

	"github.com/claudiojas/rockbandpay-table-client/models"
)

// API is the slice of the REST client the menu needs.
type API interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// Catalog is the read-only menu snapshot for one page load.
type Catalog struct {
	Categories []models.Category
	Products   []models.Product
}

// Load fetches products and categories in parallel.
func Load(ctx context.Context, api API) (Catalog, error) {
	var (
		wg         sync.WaitGroup
		products   []models.Product
		categories []models.Category
		perr, cerr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, perr = api.GetProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, cerr = api.GetCategories(ctx)
	}()
	wg.Wait()

	if perr != nil {
		return Catalog{}, perr
	}
	if cerr != nil {
		return Catalog{}, cerr
	}
	return Catalog{Categories: categories, Products: products}, nil
}

// ProductsByCategory returns the category's products in catalog order.
func (c Catalog) ProductsByCategory(categoryID string) []models.Product {
	var out []models.Product
	for _, p := range c.Products {
		if p.CategoryID == categoryID || p.Category.ID == categoryID {
			out = append(out, p)
		}
	}
	return out
}
