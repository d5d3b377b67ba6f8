package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type LeadNotificationData struct {
	Name         string
	Phone        string
	Email        string
	Message      string
	FormType     string
	InterestedIn []string
	Agreement    bool
	ReceivedAt   time.Time
}

type DailyLeadStatsData struct {
	Date           time.Time
	TotalLeads     int64
	FormTypeCounts map[string]int64
}

func NewEmailService(apiKey string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "Godrej Majesty <no-reply@godrejmajestyofficial.com>",
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// SendLeadNotificationEmail alerts the receiver about a newly captured lead.
func (s *EmailService) SendLeadNotificationEmail(to string, data LeadNotificationData) error {
	if data.Message == "" {
		data.Message = "I'm interested in the property"
	}
	if data.ReceivedAt.IsZero() {
		data.ReceivedAt = time.Now()
	}
	return s.sendTemplateEmail(to, "New Property Inquiry Submitted", "lead_notification.html", data)
}

// SendDailyLeadStats sends the end-of-day lead summary.
func (s *EmailService) SendDailyLeadStats(to string, data DailyLeadStatsData) error {
	subject := fmt.Sprintf("Your Lead Summary for %s 📊", data.Date.Format("Jan 2, 2006"))
	return s.sendTemplateEmail(to, subject, "daily_lead_stats.html", data)
}
