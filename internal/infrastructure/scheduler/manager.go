// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// BatchJob processes one batch per Execute call and returns the number of
// items it changed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

type BatchJobFunc func(ctx context.Context) (int, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int, error) {
	return f(ctx)
}

const DefaultSLACheckInterval = 15 * time.Minute

type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// jobCtx is cancelled by Stop so running batches end early.
	jobCtx    context.Context
	cancelJob context.CancelFunc

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates the scheduler in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	jobCtx, cancelJob := context.WithCancel(context.Background())
	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
		jobCtx:    jobCtx,
		cancelJob: cancelJob,
	}, nil
}

// RegisterSLAJobs scans for tickets past their SLA every interval, starting
// immediately.
func (m *SchedulerManager) RegisterSLAJobs(checkOverdueJob BatchJob, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSLACheckInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(m.jobCtx, 5*time.Minute)
			defer cancel()
			m.processOverdueTickets(ctx, checkOverdueJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("ticket", "sla"),
		gocron.WithName("sla-overdue-check"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered SLA jobs", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) processOverdueTickets(ctx context.Context, job BatchJob) {
	m.logger.Debugw("processing overdue tickets started")

	startTime := biztime.NowUTC()

	breached, err := job.Execute(ctx)
	if err != nil {
		if m.jobCtx.Err() != nil {
			return
		}
		m.logger.Errorw("failed to process overdue tickets",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if breached > 0 {
		m.logger.Infow("overdue tickets processed",
			"breached", breached,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no overdue tickets to process",
			"duration", time.Since(startTime),
		)
	}
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	m.cancelJob()
	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
