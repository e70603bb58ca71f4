package types

import "time"

type UserResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// UserSummary identifies a liker on a pledge.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PledgeOwner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PledgeResponse is the hydrated pledge shape shared by the HTTP API and the
// websocket events: owner and likers resolved to display summaries.
type PledgeResponse struct {
	ID        uint          `json:"id"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"createdAt"`
	Owner     PledgeOwner   `json:"owner"`
	Likes     []UserSummary `json:"likes"`
}

type CarbonEntryResponse struct {
	ID          uint      `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CO2Kg       float64   `json:"co2kg"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
