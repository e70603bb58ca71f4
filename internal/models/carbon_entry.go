package models

import (
	"time"

	"gorm.io/gorm"
)

type CarbonEntry struct {
	gorm.Model

	UserID      uint      `gorm:"not null;index"`
	Category    string    `gorm:"not null"` // "transport", "energy", "food", "waste", "shopping", "other"
	Description string    `gorm:"not null"`
	CO2Kg       float64   `gorm:"not null"` // Kilograms of CO2 equivalent, always >= 0
	Date        time.Time `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
