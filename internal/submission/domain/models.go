package domain

import "time"

// Submission is one contact-form entry. Rows are append-only: nothing
// in the service updates or deletes them after insert.
type Submission struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (Submission) TableName() string {
	return "form_submissions"
}
