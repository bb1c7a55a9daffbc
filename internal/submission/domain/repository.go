package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ListFilter bounds the created_at range. Both bounds are inclusive;
// a nil bound leaves that side open.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, submission *Submission) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Submission, error)
}
