package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar date format accepted and returned for expenses.
const DateLayout = "2006-01-02"

// Expense is a single spending record inside a workspace.
type Expense struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:char(36);not null;index"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"size:100;not null"`
	Date        Date      `json:"date" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// InMonth reports whether the expense date falls in the given month (1-12) and year.
func (e *Expense) InMonth(month, year int) bool {
	d := e.Date.UTC()
	return int(d.Month()) == month && d.Year() == year
}
