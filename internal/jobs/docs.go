// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every two seconds to publish outbox events to Kafka
// 2. FailedDeliveryReportJob - Runs every minute to log orders stuck in delivery-failed
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, batchSize, staleFailuresHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The relay stops at the first failed batch; unpublished events stay in the outbox
// - The report job is read-only and never transitions an order
// - Failed job starts will stop any already running jobs
package jobs
