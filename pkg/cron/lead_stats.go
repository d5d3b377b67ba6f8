// pkg/cron/lead_stats.go
package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"majesty_backend/internal/model"
	"majesty_backend/pkg/database"
	"majesty_backend/pkg/email"
)

// InitLeadStatsCron schedules the daily lead summary mail.
func InitLeadStatsCron(emailService *email.EmailService) {
	c := cron.New()

	// Every day at 20:00
	_, err := c.AddFunc("0 20 * * *", func() {
		sendDailyLeadStats(emailService)
	})

	if err != nil {
		log.Printf("Could not initialize lead stats cron: %v", err)
		return
	}

	c.Start()
}

func sendDailyLeadStats(emailService *email.EmailService) {
	if emailService == nil {
		return
	}

	db := database.GetDB()

	settings, err := model.GetSiteSettings(db)
	if err != nil {
		log.Printf("Could not load site settings for lead stats: %v", err)
		return
	}

	since := time.Now().AddDate(0, 0, -1)

	var total int64
	if err := db.Model(&model.Lead{}).
		Where("created_at >= ?", since).
		Count(&total).Error; err != nil {
		log.Printf("Could not count leads for stats: %v", err)
		return
	}

	var rows []struct {
		FormType string
		Count    int64
	}
	db.Model(&model.Lead{}).
		Select("form_type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("form_type").
		Scan(&rows)

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.FormType] = row.Count
	}

	err = emailService.SendDailyLeadStats(settings.ReceiverEmail, email.DailyLeadStatsData{
		Date:           time.Now(),
		TotalLeads:     total,
		FormTypeCounts: counts,
	})
	if err != nil {
		log.Printf("Could not send daily lead stats: %v", err)
	}
}
