package models

import "time"

// Entry is one item pulled from the RSS feed. Link and Published may be
// missing in the wild; consumers decide whether such an entry is usable.
type Entry struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// Article is the text scraped from one entry's linked page, tagged with
// the entry title it came from.
type Article struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
