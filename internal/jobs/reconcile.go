// File: internal/jobs/reconcile.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"donation_backend/internal/config"
	"donation_backend/internal/donation"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reconcileFetchCount is how many recent gateway payments each run inspects.
const reconcileFetchCount = 100

// ReconcileJob periodically compares recent gateway payments against
// the donation log and logs captured payments with no record.
type ReconcileJob struct {
	donationService *donation.Service
	logger          *zap.Logger
	cfg             *config.Config
	cronScheduler   *cron.Cron
}

// NewReconcileJob creates a new ReconcileJob.
func NewReconcileJob(
	donationService *donation.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *ReconcileJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ReconcileJob{
		donationService: donationService,
		logger:          logger.Named("ReconcileJob"),
		cfg:             cfg,
		cronScheduler:   scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ReconcileJob) SetupAndStart() error {
	jobSpec := j.cfg.ReconcileJobSchedule // e.g. "@hourly", "0 2 * * *"
	if jobSpec == "" {
		j.logger.Warn("Reconcile job schedule not defined (RECONCILE_JOB_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule reconcile job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Reconcile job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *ReconcileJob) runJob() {
	j.logger.Info("Starting donation reconciliation run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	unrecorded, err := j.donationService.Reconcile(ctx, reconcileFetchCount)
	if err != nil {
		j.logger.Error("Donation reconciliation run failed", zap.Error(err))
	} else {
		j.logger.Info("Donation reconciliation run completed", zap.Int("unrecorded_payments", unrecorded))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *ReconcileJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping reconcile job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Reconcile job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Reconcile job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
