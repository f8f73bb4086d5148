package model

import "time"

type PlaylistItem struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Poster  string    `json:"poster"`
	AddedAt time.Time `json:"addedAt"`
}

func PlaylistContains(items []PlaylistItem, id int64) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
