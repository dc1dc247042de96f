package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	ListByBuyer(ctx context.Context, db *gorm.DB, buyerID int64) ([]Order, error)
}
