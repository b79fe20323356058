package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const outboxRelaySchedule = "*/2 * * * * *"

// OutboxRelayJob publishes outbox events to the notification collaborator.
// Runs every two seconds; a failed publish is retried on the next tick.
type OutboxRelayJob struct {
	handler   commands.RelayOutboxCommandHandler
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job. batchSize below 1 means
// commands.DefaultRelayBatchSize.
func NewOutboxRelayJob(handler commands.RelayOutboxCommandHandler, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if batchSize < 1 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start begins relaying.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(outboxRelaySchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", outboxRelaySchedule)
	return nil
}

// Stop stops the job and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// run drains the outbox batch by batch until it is empty or a batch fails.
func (j *OutboxRelayJob) run(ctx context.Context) int {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return 0
	}

	total := 0
	for {
		n, err := j.handler.Handle(ctx, cmd)
		total += n
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "published", total)
			return total
		}
		if n < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Outbox events published", "count", total)
	}
	return total
}
