package models

import "time"

type Review struct {
	ID      uint  `json:"id" gorm:"primarykey"`
	TitleID uint  `json:"title" gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:2"`
	Title   Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	// The composite unique index is the concurrency guard for the
	// one-review-per-author-per-title invariant; duplicate inserts fail at
	// the store, never via check-then-insert.
	AuthorID uint   `json:"-" gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:1"`
	Author   User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string `json:"text" gorm:"type:text;not null"`
	Score    int    `json:"score" gorm:"not null"`
	// AuthorUsername mirrors Author.Username for serialization.
	AuthorUsername string    `json:"author" gorm:"-"`
	PubDate        time.Time `json:"pub_date" gorm:"autoCreateTime;<-:create"`
}
