package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidHistoryType = errors.New("invalid history type (must be Book, Game, Course or Payment)")
	ErrHistoryNameEmpty   = errors.New("history item name cannot be empty")
)

type ItemType string

const (
	ItemBook    ItemType = "Book"
	ItemGame    ItemType = "Game"
	ItemCourse  ItemType = "Course"
	ItemPayment ItemType = "Payment"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemBook, ItemGame, ItemCourse, ItemPayment:
		return true
	}
	return false
}

// CompletedItem is an immutable record of a specific finished work item.
// TimeSpent carries the task timer value reported by the client.
type CompletedItem struct {
	ID            string    `json:"id" db:"id"`
	Type          ItemType  `json:"type" db:"type"`
	Name          string    `json:"name" db:"name"`
	CompletedDate time.Time `json:"completedDate" db:"completed_date"`
	TimeSpent     *int64    `json:"timeSpent,omitempty" db:"time_spent"`
	ParentID      string    `json:"parentId" db:"parent_id"`
}

func NewCompletedItem(itemType ItemType, name, parentID string, timeSpent int64, now time.Time) (*CompletedItem, error) {
	item := &CompletedItem{
		ID:            uuid.NewString(),
		Type:          itemType,
		Name:          strings.TrimSpace(name),
		CompletedDate: now.UTC(),
		ParentID:      parentID,
	}
	if timeSpent > 0 {
		item.TimeSpent = &timeSpent
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *CompletedItem) Validate() error {
	if !i.Type.IsValid() {
		return ErrInvalidHistoryType
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrHistoryNameEmpty
	}
	return nil
}
