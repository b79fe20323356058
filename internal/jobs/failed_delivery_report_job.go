package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

const failedDeliveryReportSchedule = "0 * * * * *"

// FailedDeliveryReportJob logs orders waiting in delivery-failed longer than the
// failure policy allows, so a depot manager reroutes or returns them.
type FailedDeliveryReportJob struct {
	handler queries.ListStaleDeliveryFailuresQueryHandler
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewFailedDeliveryReportJob creates the report job, running every minute.
func NewFailedDeliveryReportJob(handler queries.ListStaleDeliveryFailuresQueryHandler, logger *slog.Logger) *FailedDeliveryReportJob {
	return &FailedDeliveryReportJob{
		handler: handler,
		now:     func() time.Time { return time.Now().UTC() },
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "failed_delivery_report_job"),
	}
}

// Start begins reporting.
func (j *FailedDeliveryReportJob) Start() error {
	if _, err := j.cron.AddFunc(failedDeliveryReportSchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Failed delivery report job started", "schedule", failedDeliveryReportSchedule)
	return nil
}

// Stop stops the job.
func (j *FailedDeliveryReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Failed delivery report job stopped")
}

func (j *FailedDeliveryReportJob) run(ctx context.Context) int {
	query, err := queries.NewListStaleDeliveryFailuresQuery(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed delivery report misconfigured", "error", err)
		return 0
	}

	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed delivery report failed", "error", err)
		return 0
	}

	for _, o := range stale {
		attrs := []any{
			"orderId", o.ID.String(),
			"trackingNumber", o.TrackingNumber,
			"failedAt", o.FailedAt,
			"reason", string(o.Reason),
		}
		if o.DepotID != nil {
			attrs = append(attrs, "depotId", o.DepotID.String())
		}
		j.logger.WarnContext(ctx, "Order waiting in delivery-failed", attrs...)
	}
	return len(stale)
}
