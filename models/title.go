package models

import "time"

type Title struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"not null;size:256"`
	Year        int       `json:"year" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre" gorm:"many2many:title_genres;"`
	// Rating is derived at read time: floor of the mean review score,
	// null while the title has no reviews. Never stored.
	Rating    *int      `json:"rating" gorm:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
