package models

import (
	"time"
)

// Todo is a single to-do item. OwnerID is fixed at creation and the service
// layer is the only writer of the timestamps.
type Todo struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string    `gorm:"type:varchar(36);index;not null" json:"ownerId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	DueDate     *Date     `gorm:"type:date" json:"dueDate"`
	Priority    string    `gorm:"type:varchar(20)" json:"priority"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
