package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneralTask is a one-off item of the general task pool, grouped by
// category. The random pick rule draws from the incomplete ones.
type GeneralTask struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Category  string    `json:"category" gorm:"index"`
	Completed bool      `json:"completed" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewGeneralTask(name, category string) (*GeneralTask, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil, ErrTaskNameEmpty
	}

	cat := strings.TrimSpace(category)
	if cat == "" {
		cat = "General"
	}

	now := time.Now().UTC()
	return &GeneralTask{
		ID:        uuid.NewString(),
		Name:      clean,
		Category:  cat,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
