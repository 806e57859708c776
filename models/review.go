package models

import "time"

// Review holds one rating per (product, user) pair; resubmitting updates the
// existing row instead of creating a duplicate.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"uniqueIndex:idx_reviews_product_user;not null" json:"product_id"`
	UserID    string    `gorm:"uniqueIndex:idx_reviews_product_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
