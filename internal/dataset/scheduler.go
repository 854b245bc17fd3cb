package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	reloadTimeout          = 2 * time.Minute
	defaultRefreshInterval = time.Hour
)

type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically refreshes the dataset snapshot.
type Scheduler struct {
	reloader Reloader
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func NewScheduler(reloader Reloader, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Scheduler{reloader: reloader, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		reloadCtx, cancel := context.WithTimeout(jobCtx, reloadTimeout)
		defer cancel()

		start := time.Now()
		if reloadErr := s.reloader.Reload(reloadCtx); reloadErr != nil {
			logrus.WithError(reloadErr).WithField("exec_id", execID).Error("Dataset refresh failed, keeping previous snapshot")
			return
		}
		logrus.WithFields(logrus.Fields{"exec_id": execID, "took": time.Since(start)}).Info("Dataset refreshed")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}
