package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string  `gorm:"not null"`
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	Avatar       string
	TotalCO2     float64 `gorm:"not null;default:0"` // Cached sum of the user's carbon entries, recomputed on every entry write

	// Relationships
	CarbonEntries []CarbonEntry `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Pledges       []Pledge      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	PledgeLikes   []PledgeLike  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
