package templates

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"storeops_backend/internals/features/tasks/templates/model"
	"storeops_backend/internals/helpers/dbtime"
)

type TemplateSeed struct {
	Title         string  `json:"task_template_title"`
	Recurrence    string  `json:"task_template_recurrence"`
	TargetCount   int     `json:"task_template_target_count"`
	DueTime       *string `json:"task_template_due_time"` // "HH:MM", may be null
	RequiresProof bool    `json:"task_template_requires_proof"`
	RewardPoints  int     `json:"task_template_reward_points"`
}

func SeedTaskTemplatesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading seed file:", filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Failed to read seed JSON: %v", err)
		return
	}

	var data []TemplateSeed
	if err := json.Unmarshal(content, &data); err != nil {
		log.Printf("❌ Failed to decode seed JSON: %v", err)
		return
	}

	for _, item := range data {
		var existing model.TaskTemplateModel
		if err := db.Where("task_template_title = ?", item.Title).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Template %q already exists, skipping...", item.Title)
			continue
		}

		record := model.TaskTemplateModel{
			TaskTemplateTitle:         item.Title,
			TaskTemplateRecurrence:    model.Recurrence(item.Recurrence),
			TaskTemplateTargetCount:   item.TargetCount,
			TaskTemplateRequiresProof: item.RequiresProof,
			TaskTemplateRewardPoints:  item.RewardPoints,
		}
		if item.DueTime != nil {
			tod, err := dbtime.Parse(*item.DueTime)
			if err != nil {
				log.Printf("❌ Template %q has bad due_time %q: %v", item.Title, *item.DueTime, err)
				continue
			}
			record.TaskTemplateDueTime = &tod
		}

		if err := db.Create(&record).Error; err != nil {
			log.Printf("❌ Failed to insert template %q: %v", item.Title, err)
		} else {
			log.Printf("✅ Inserted template %q", item.Title)
		}
	}
}
