package seeds

import (
	"gorm.io/gorm"

	templates "storeops_backend/internals/seeds/tasks/templates"
)

// RunAllSeeds loads demo data for a fresh database. Every seeder skips
// rows that already exist, so re-running on boot is safe.
func RunAllSeeds(db *gorm.DB) {
	templates.SeedTaskTemplatesFromJSON(db, "internals/seeds/tasks/templates/data_task_templates.json")
}
