package models

import "time"

// Category is a named grouping for transactions. Name uniqueness is
// enforced by the database index, not by a query-then-insert check.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
