package model

import "gorm.io/gorm"

type GalleryImage struct {
	gorm.Model
	Title        string `json:"title"`
	URL          string `json:"url" gorm:"not null"`
	ObjectKey    string `json:"-" gorm:"not null"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
}
