// Package home assembles the storefront landing payload from catalog reads.
package home

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
)

// Content is the landing page payload: current offers, the category list,
// and a featured product shelf.
type Content struct {
	Offers     []catalog.Product
	Categories []catalog.Category
	Featured   []catalog.Product
}

// Service assembles Content from the catalog.
type Service struct {
	products   catalog.Repository
	categories catalog.CategoryRepository
}

// NewService builds a home Service.
func NewService(products catalog.Repository, categories catalog.CategoryRepository) *Service {
	return &Service{products: products, categories: categories}
}

// Load fetches the three sections concurrently. Any section failure fails
// the whole load; the landing page has no partial render.
func (s *Service) Load(ctx context.Context, page catalog.Page) (*Content, error) {
	var content Content

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		offers, err := s.products.ListOffers(ctx, page)
		if err != nil {
			return errors.Wrap(err, "list offers")
		}
		content.Offers = offers
		return nil
	})
	g.Go(func() error {
		categories, err := s.categories.List(ctx)
		if err != nil {
			return errors.Wrap(err, "list categories")
		}
		content.Categories = categories
		return nil
	})
	g.Go(func() error {
		featured, err := s.products.ListFeatured(ctx, page)
		if err != nil {
			return errors.Wrap(err, "list featured")
		}
		content.Featured = featured
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &content, nil
}
