// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/mvelkov/shopchat/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Product catalog
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	// ListProductRecords returns catalog rows as raw column maps for the
	// assistant's sanitizer.
	ListProductRecords(ctx context.Context) ([]map[string]interface{}, error)

	// Message log
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int, before string) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
