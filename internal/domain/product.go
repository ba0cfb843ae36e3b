package domain

import "time"

// ProductStatus is the lifecycle state of a product in the store.
type ProductStatus string

const (
	StatusPending   ProductStatus = "pending"
	StatusCompleted ProductStatus = "completed"
)

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Product struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
