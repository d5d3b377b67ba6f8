package model

import "gorm.io/gorm"

type Brochure struct {
	gorm.Model
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description" gorm:"type:text"`
	FilePath      string `json:"file_path" gorm:"not null"`
	FileSize      int64  `json:"file_size"`
	DownloadCount uint   `json:"download_count" gorm:"default:0"`
	IsFeatured    bool   `json:"is_featured" gorm:"default:false"`
	DisplayOrder  int    `json:"display_order" gorm:"default:0"`
}
