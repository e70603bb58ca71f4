// Package stats maintains the denormalized CO2 aggregates. User totals are
// always recomputed from the entry table rather than incremented, so a missed
// or raced update heals on the next write.
package stats

import (
	"time"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/models"
)

// RecomputeUserTotal re-derives a user's cached total from their current
// entries and writes it back. Safe to race with itself: both racers read the
// post-write entry set and converge on the same sum.
func RecomputeUserTotal(userID uint) error {
	var total float64

	err := db.DB.Model(&models.CarbonEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(co2_kg), 0)").
		Scan(&total).Error

	if err != nil {
		return err
	}

	return db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_co2", total).Error
}

// GlobalTotal sums every user's cached total, fresh on each call.
func GlobalTotal() (float64, error) {
	var total float64

	err := db.DB.Model(&models.User{}).
		Select("COALESCE(SUM(total_co2), 0)").
		Scan(&total).Error

	return total, err
}

type UserStats struct {
	TotalCO2     float64            `json:"totalCO2"`
	ByCategory   map[string]float64 `json:"byCategory"`
	ByDate       map[string]float64 `json:"byDate"`
	TotalEntries int                `json:"totalEntries"`
}

// ComputeUserStats aggregates a user's entries for the dashboard: lifetime
// total, per-category breakdown, and per-day totals over the last 30 days.
func ComputeUserStats(userID uint) (UserStats, error) {
	var entries []models.CarbonEntry

	if err := db.DB.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return UserStats{}, err
	}

	result := UserStats{
		ByCategory:   make(map[string]float64),
		ByDate:       make(map[string]float64),
		TotalEntries: len(entries),
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	for _, entry := range entries {
		result.TotalCO2 += entry.CO2Kg
		result.ByCategory[entry.Category] += entry.CO2Kg

		if !entry.Date.Before(thirtyDaysAgo) {
			dateKey := entry.Date.Format("2006-01-02")
			result.ByDate[dateKey] += entry.CO2Kg
		}
	}

	return result, nil
}
