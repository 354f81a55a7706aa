package main

import "time"

type Entry struct {
	ID        int64
	Title     string
	Text      string
	CreatedAt time.Time
}
