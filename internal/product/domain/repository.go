package domain

import (
	"context"

	"gorm.io/gorm"
)

type ListFilter struct {
	SellerID int64
	Active   *bool
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, error)
}
