package model

import "gorm.io/gorm"

// SiteSettings is a singleton row holding the lead receiver and the
// public contact details shown on the site.
type SiteSettings struct {
	gorm.Model
	ReceiverEmail    string `json:"receiver_email" gorm:"not null"`
	ReceiverWhatsApp string `json:"receiver_whatsapp"`
	ContactPhone     string `json:"contact_phone"`
	ContactEmail     string `json:"contact_email"`
	Address          string `json:"address" gorm:"type:text"`
}

// GetSiteSettings returns the singleton settings row.
func GetSiteSettings(db *gorm.DB) (*SiteSettings, error) {
	var settings SiteSettings
	if err := db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
