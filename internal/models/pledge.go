package models

import "gorm.io/gorm"

type Pledge struct {
	gorm.Model

	UserID uint   `gorm:"not null;index"`
	Text   string `gorm:"not null"` // Trimmed, 10-500 characters

	// Relationships
	User  User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Likes []PledgeLike `gorm:"foreignKey:PledgeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
