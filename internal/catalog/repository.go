package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/internal/repo"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists the catalog so it can be served without the upstream.
// It satisfies Source.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Fetch loads the stored catalog in its original order. An empty table is a valid,
// empty catalog.
func (r *Repository) Fetch(ctx context.Context) ([]Product, error) {
	var rows []models.CatalogProduct
	if err := r.DB(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, retrievalFailure(fmt.Errorf("query catalog products: %w", err))
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out, nil
}

// Replace makes the stored catalog equal to products: rows are upserted by id and
// anything not in the new set is removed, all in one transaction.
func (r *Repository) Replace(ctx context.Context, products []Product) error {
	rows := make([]models.CatalogProduct, 0, len(products))
	keep := make([]int, 0, len(products))
	for i, p := range products {
		rows = append(rows, modelFromProduct(p, i))
		keep = append(keep, p.ID)
	}

	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if len(rows) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"position", "title", "price", "description", "category",
					"image", "rating_rate", "rating_count", "updated_at",
				}),
			}).Create(&rows).Error
			if err != nil {
				return fmt.Errorf("upsert catalog products: %w", err)
			}
		}

		stale := tx.Model(&models.CatalogProduct{})
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		} else {
			stale = stale.Where("1 = 1")
		}
		if err := stale.Delete(&models.CatalogProduct{}).Error; err != nil {
			return fmt.Errorf("prune catalog products: %w", err)
		}
		return nil
	})
}

func productFromModel(m models.CatalogProduct) Product {
	return Product{
		ID:          m.ID,
		Title:       m.Title,
		Price:       m.Price,
		Description: m.Description,
		Category:    m.Category,
		Image:       m.Image,
		Rating:      Rating{Rate: m.RatingRate, Count: m.RatingCount},
	}
}

func modelFromProduct(p Product, position int) models.CatalogProduct {
	return models.CatalogProduct{
		ID:          p.ID,
		Position:    position,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		RatingRate:  p.Rating.Rate,
		RatingCount: p.Rating.Count,
	}
}
