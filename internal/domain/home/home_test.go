package home

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
)

type productRepoMock struct {
	catalog.Repository

	listOffers   func(ctx context.Context, page catalog.Page) ([]catalog.Product, error)
	listFeatured func(ctx context.Context, page catalog.Page) ([]catalog.Product, error)
}

func (m *productRepoMock) ListOffers(ctx context.Context, page catalog.Page) ([]catalog.Product, error) {
	return m.listOffers(ctx, page)
}

func (m *productRepoMock) ListFeatured(ctx context.Context, page catalog.Page) ([]catalog.Product, error) {
	return m.listFeatured(ctx, page)
}

type categoryRepoMock struct {
	list func(ctx context.Context) ([]catalog.Category, error)
}

func (m *categoryRepoMock) List(ctx context.Context) ([]catalog.Category, error) {
	return m.list(ctx)
}

func TestLoad(t *testing.T) {
	products := &productRepoMock{
		listOffers: func(context.Context, catalog.Page) ([]catalog.Product, error) {
			return []catalog.Product{{SKU: "SKU-OFFER"}}, nil
		},
		listFeatured: func(context.Context, catalog.Page) ([]catalog.Product, error) {
			return []catalog.Product{{SKU: "SKU-FEAT-1"}, {SKU: "SKU-FEAT-2"}}, nil
		},
	}
	categories := &categoryRepoMock{
		list: func(context.Context) ([]catalog.Category, error) {
			return []catalog.Category{{ID: "eletronicos", Name: "Eletrônicos"}}, nil
		},
	}

	svc := NewService(products, categories)
	content, err := svc.Load(context.Background(), catalog.Page{Number: 1, Size: 10})
	require.NoError(t, err)

	require.Len(t, content.Offers, 1)
	assert.Equal(t, "SKU-OFFER", content.Offers[0].SKU)
	require.Len(t, content.Categories, 1)
	assert.Len(t, content.Featured, 2)
}

func TestLoadSectionFailure(t *testing.T) {
	products := &productRepoMock{
		listOffers: func(context.Context, catalog.Page) ([]catalog.Product, error) {
			return nil, errors.New("connection reset")
		},
		listFeatured: func(context.Context, catalog.Page) ([]catalog.Product, error) {
			return nil, nil
		},
	}
	categories := &categoryRepoMock{
		list: func(context.Context) ([]catalog.Category, error) { return nil, nil },
	}

	svc := NewService(products, categories)
	_, err := svc.Load(context.Background(), catalog.Page{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list offers")
}
