package app

import (
	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/ad"
	"go-jobmarket/internal/employer"
	"go-jobmarket/internal/messaging/kafka"
	"go-jobmarket/internal/mou"

	"gorm.io/gorm"
)

// statements that gorm tags cannot express.
var rawMigrations = []string{
	`CREATE TABLE IF NOT EXISTS scope_counters (
		scope_id     varchar(64) NOT NULL,
		counter_type varchar(40) NOT NULL,
		last_value   bigint      NOT NULL,
		updated_at   timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (scope_id, counter_type)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_mou_employer_active ON mous (employer_id) WHERE is_active`,
}

// Migrate creates or updates every table the API, worker and consumer touch.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&employer.Employer{},
		&employer.Company{},
		&mou.MOU{},
		&ad.Ad{},
		&activitylog.Entry{},
		&kafka.OutboxEvent{},
	)
	if err != nil {
		return err
	}
	for _, stmt := range rawMigrations {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
