package model

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusRead       LeadStatus = "read"
	LeadStatusContacted  LeadStatus = "contacted"
	LeadStatusNoResponse LeadStatus = "no_response"
	LeadStatusCompleted  LeadStatus = "completed"
)

type Lead struct {
	gorm.Model
	Name         string         `json:"name" gorm:"not null"`
	Phone        string         `json:"phone" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null"`
	Message      string         `json:"message" gorm:"type:text"`
	InterestedIn datatypes.JSON `json:"interested_in"`
	FormType     string         `json:"form_type" gorm:"index;default:'general'"`
	Agreement    bool           `json:"agreement" gorm:"default:false"`
	Status       LeadStatus     `json:"status" gorm:"default:'new'"`
	ReadStatus   bool           `json:"read_status" gorm:"default:false"`
}

// InterestedInValues decodes the stored JSON array of catalog values.
func (l *Lead) InterestedInValues() []string {
	var values []string
	if len(l.InterestedIn) == 0 {
		return values
	}
	if err := json.Unmarshal(l.InterestedIn, &values); err != nil {
		return nil
	}
	return values
}
