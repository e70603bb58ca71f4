package models

import "gorm.io/gorm"

// PledgeLike is one user's like on one pledge. The composite unique index is
// what keeps the like-set duplicate-free under concurrent toggles.
type PledgeLike struct {
	gorm.Model

	PledgeID uint `gorm:"not null;uniqueIndex:idx_pledge_user"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_pledge_user"`

	// Relationships
	Pledge Pledge `gorm:"foreignKey:PledgeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
