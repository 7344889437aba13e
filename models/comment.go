package models

import "time"

type Comment struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	ReviewID       uint      `json:"review" gorm:"not null"`
	Review         Review    `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	AuthorID       uint      `json:"-" gorm:"not null"`
	Author         User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text           string    `json:"text" gorm:"type:text;not null"`
	AuthorUsername string    `json:"author" gorm:"-"`
	PubDate        time.Time `json:"pub_date" gorm:"autoCreateTime;<-:create"`
}
