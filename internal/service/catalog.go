package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/database/repository"
)

// Snapshot is the catalog as read from storage at one point in time.
type Snapshot struct {
	Items      []catalog.Item
	Categories []repository.Category
	Classify   catalog.Classifier
}

// Labels lists the category names in display order.
func (s Snapshot) Labels() []string { return repository.Labels(s.Categories) }

// CatalogService reads the product catalog.
type CatalogService struct {
	Products   *repository.ProductRepo
	Categories *repository.CategoryRepo
	Log        *zap.Logger
}

// Load fetches products and categories concurrently.
func (s *CatalogService) Load(ctx context.Context) (Snapshot, error) {
	var (
		products []repository.Product
		cats     []repository.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.Products.List(gctx, repository.ProductFilters{})
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cats, err = s.Categories.List(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	if s.Log != nil {
		s.Log.Debug("catalog loaded", zap.Int("products", len(products)), zap.Int("categories", len(cats)))
	}
	return Snapshot{
		Items:      repository.Items(products),
		Categories: cats,
		Classify:   repository.NewClassifier(cats),
	}, nil
}
