package database

import "time"

// Movie is the single persisted entity: one film plus the user's
// opinion of it. Ranking is derived from rating order at read time and
// is never written back; the column only exists so rows stay compatible
// with databases produced by earlier versions.
type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Year        int       `gorm:"not null" json:"year"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Rating      *float64  `json:"rating"`
	Ranking     int       `json:"ranking"`
	Review      string    `gorm:"size:250" json:"review"`
	ImgURL      string    `gorm:"size:250;not null" json:"img_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
