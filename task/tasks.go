package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/angas/stromradar/config"
	"github.com/angas/stromradar/database"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	MaintenanceTask func()
}

func NewTasks(db *database.Database, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg.Logging.GetDbMaxEntries()),
	}
}

func (t *Tasks) Run() error {
	if _, err := t.cron.AddFunc(t.cnfg.Maintenance.GetRunAt(), t.MaintenanceTask); err != nil {
		return fmt.Errorf("scheduling maintenance task: %w", err)
	}
	t.cron.Start()
	return nil
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
