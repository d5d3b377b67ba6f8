package controller

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"majesty_backend/internal/lead"
	"majesty_backend/internal/model"
	"majesty_backend/pkg/database"
	"majesty_backend/pkg/email"
	"majesty_backend/pkg/utils/storage"
)

type LeadInput struct {
	Name         string   `json:"name" validate:"required"`
	Phone        string   `json:"phone" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Message      string   `json:"message"`
	InterestedIn []string `json:"interestedIn"`
	FormType     string   `json:"formType"`
	Agreement    bool     `json:"agreement"`
}

var leadService *lead.Service

func InitLeadController() {
	leadService = lead.NewService(
		lead.NewGormRepository(),
		settingsNotifier{},
		storageResolver{},
		storage.BrochureBucket,
	)
}

// settingsNotifier emails the receiver configured in site settings.
type settingsNotifier struct{}

func (settingsNotifier) SendLeadNotification(l *model.Lead) error {
	if email.GlobalEmailService == nil {
		return nil
	}

	settings, err := model.GetSiteSettings(database.GetDB())
	if err != nil {
		return fmt.Errorf("could not load site settings: %v", err)
	}

	return email.GlobalEmailService.SendLeadNotificationEmail(settings.ReceiverEmail, email.LeadNotificationData{
		Name:         l.Name,
		Phone:        l.Phone,
		Email:        l.Email,
		Message:      l.Message,
		FormType:     l.FormType,
		InterestedIn: l.InterestedInValues(),
		Agreement:    l.Agreement,
		ReceivedAt:   l.CreatedAt,
	})
}

type storageResolver struct{}

func (storageResolver) PublicURL(bucket, path string) string {
	return storage.PublicURL(bucket, path)
}

// CreateLead runs the submission pipeline for every public lead form.
// A mandatory-inquiry submission additionally completes the visitor's
// gate session and returns the resumed action.
func CreateLead(c *fiber.Ctx) error {
	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = fmt.Sprintf("%s_%s", c.IP(), time.Now().Format("20060102"))
	}

	formType := lead.FormType(input.FormType)
	key := sessionID + ":" + string(formType)

	result, err := leadService.Submit(c.UserContext(), key, formType, lead.Input{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Message:      input.Message,
		InterestedIn: input.InterestedIn,
		Agreement:    input.Agreement,
	})
	if err != nil {
		var fieldErrs lead.FieldErrors
		if errors.As(err, &fieldErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": fieldErrs,
			})
		}
		if errors.Is(err, lead.ErrSubmissionInFlight) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "A submission is already in progress",
			})
		}
		log.Printf("Could not create lead: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit inquiry. Please try again.",
		})
	}

	response := fiber.Map{
		"message": "Thank you for your interest! Our team will contact you within 24 hours.",
		"lead_id": result.Lead.ID,
	}

	if whatsappURL := buildWhatsAppURL(result.Lead); whatsappURL != "" {
		response["whatsapp_url"] = whatsappURL
	}

	if result.Download != nil {
		if result.Download.Err != "" {
			response["download_error"] = result.Download.Err
		} else {
			response["download"] = result.Download
		}
	}

	if formType == lead.FormTypeMandatoryInquiry {
		if resumed := completeGateSession(c, sessionID); resumed != nil {
			response["resumed_action"] = resumed
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// buildWhatsAppURL prepares a wa.me hand-off link for the receiver.
func buildWhatsAppURL(l *model.Lead) string {
	settings, err := model.GetSiteSettings(database.GetDB())
	if err != nil || settings.ReceiverWhatsApp == "" {
		return ""
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, settings.ReceiverWhatsApp)
	if digits == "" {
		return ""
	}

	text := fmt.Sprintf("New Lead - %s, Phone: %s, Email: %s", l.Name, l.Phone, l.Email)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text))
}

// GetCatalogOptions lists the unit-type choices the forms offer.
func GetCatalogOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"options": lead.Catalog(),
	})
}

// GetLeads lists captured leads for the admin dashboard.
func GetLeads(c *fiber.Ctx) error {
	var leads []model.Lead
	query := database.GetDB().Model(&model.Lead{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if formType := c.Query("form_type"); formType != "" {
		query = query.Where("form_type = ?", formType)
	}

	if readStatus := c.Query("read"); readStatus != "" {
		query = query.Where("read_status = ?", readStatus == "true")
	}

	if err := query.Order("created_at desc").Find(&leads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch leads",
		})
	}

	return c.JSON(leads)
}

func MarkLeadAsRead(c *fiber.Ctx) error {
	leadID := c.Params("id")

	var row model.Lead
	if err := database.GetDB().First(&row, leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	if err := database.GetDB().Model(&row).Update("read_status", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not mark lead as read",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func UpdateLeadStatus(c *fiber.Ctx) error {
	leadID := c.Params("id")

	var row model.Lead
	if err := database.GetDB().First(&row, leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	input := struct {
		Status string `json:"status"`
	}{}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	switch model.LeadStatus(input.Status) {
	case model.LeadStatusNew,
		model.LeadStatusRead,
		model.LeadStatusContacted,
		model.LeadStatusNoResponse,
		model.LeadStatusCompleted:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
			"valid_statuses": []string{
				string(model.LeadStatusNew),
				string(model.LeadStatusRead),
				string(model.LeadStatusContacted),
				string(model.LeadStatusNoResponse),
				string(model.LeadStatusCompleted),
			},
		})
	}

	if err := database.GetDB().Model(&row).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    row,
	})
}

// DashboardStats summarizes lead capture for the admin dashboard.
type DashboardStats struct {
	TotalLeads     int64           `json:"total_leads"`
	UnreadLeads    int64           `json:"unread_leads"`
	TodayLeads     int64           `json:"today_leads"`
	FormTypeCounts []FormTypeCount `json:"form_type_counts"`
	DailyStats     []DailyLeadStat `json:"daily_stats"`
}

type FormTypeCount struct {
	FormType string `json:"form_type"`
	Count    int64  `json:"count"`
}

type DailyLeadStat struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func GetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var stats DashboardStats

	db.Model(&model.Lead{}).Count(&stats.TotalLeads)
	db.Model(&model.Lead{}).Where("read_status = ?", false).Count(&stats.UnreadLeads)
	db.Model(&model.Lead{}).
		Where("DATE(created_at) = ?", time.Now().Format("2006-01-02")).
		Count(&stats.TodayLeads)

	db.Model(&model.Lead{}).
		Select("form_type, COUNT(*) as count").
		Group("form_type").
		Order("count DESC").
		Scan(&stats.FormTypeCounts)

	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		var stat DailyLeadStat
		stat.Date = date.Format("2006-01-02")

		db.Model(&model.Lead{}).
			Where("DATE(created_at) = ?", stat.Date).
			Count(&stat.Count)

		stats.DailyStats = append(stats.DailyStats, stat)
	}

	return c.JSON(stats)
}
