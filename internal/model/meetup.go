package model

import "github.com/tirgei/questioner/internal/store"

// Meetup represents a scheduled meetup. Questions reference meetups by id
// but do not own them.
//
// HappeningOn is kept as the date string the client submitted; the API
// validates presence, not format, matching the upstream contract.
type Meetup struct {
	store.Meta
	Topic       string   `json:"topic"`
	Location    string   `json:"location"`
	HappeningOn string   `json:"happening_on"`
	Tags        []string `json:"tags"`
	CreatedBy   int      `json:"created_by"`
}
