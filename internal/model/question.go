package model

import "github.com/tirgei/questioner/internal/store"

// Question represents a question posted against an existing meetup.
//
// Votes starts at 0 and moves by exactly 1 per upvote/downvote. There is
// no floor or ceiling: a heavily downvoted question goes negative.
type Question struct {
	store.Meta
	Title     string `json:"title"`
	Body      string `json:"body"`
	MeetupID  int    `json:"meetup_id"`
	CreatedBy int    `json:"created_by"`
	Votes     int    `json:"votes"`
}
