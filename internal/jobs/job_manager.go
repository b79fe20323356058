package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob          *OutboxRelayJob
	failedDeliveryReportJob *FailedDeliveryReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	relayHandler commands.RelayOutboxCommandHandler,
	relayBatchSize int,
	staleFailuresHandler queries.ListStaleDeliveryFailuresQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:          NewOutboxRelayJob(relayHandler, relayBatchSize, logger),
		failedDeliveryReportJob: NewFailedDeliveryReportJob(staleFailuresHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.failedDeliveryReportJob.Start(); err != nil {
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start failed delivery report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.failedDeliveryReportJob.Stop()
	jm.outboxRelayJob.Stop()
}
