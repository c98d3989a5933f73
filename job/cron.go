package job

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"lexstyle/service"
)

const backfillBatch = 50

// StartCronJobs schedules the nightly quick-style backfill: documents whose
// best-effort tone analysis failed at upload get another pass off-peak.
func StartCronJobs(training *service.TrainingService, log *zap.Logger) *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// 02:00 every day
	_, _ = c.AddFunc("0 0 2 * * *", func() {
		ctx := context.Background()
		updated, err := training.BackfillQuickStyle(ctx, backfillBatch)
		if err != nil {
			log.Error("quick-style backfill failed", zap.Error(err))
			return
		}
		log.Info("quick-style backfill done", zap.Int("updated", updated))
	})

	c.Start()
	return c
}
