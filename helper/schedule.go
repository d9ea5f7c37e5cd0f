package helper

import (
	"cinema_scheduler/cache"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	ScheduleLock = "schedule-generation"
	ImportLock   = "catalog-import"
	jobLockTTL   = 30 * time.Minute
)

// Generator is the part of the auto scheduler the jobs and handlers need.
type Generator interface {
	Generate(ctx context.Context) (int, error)
}

// RunExclusive runs fn while holding the named lock. It returns cache.ErrLocked
// without running fn when another run holds the lock.
func RunExclusive(ctx context.Context, locker cache.Locker, name string, fn func(context.Context) error) error {
	release, err := locker.Acquire(ctx, name, jobLockTTL)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// ParseAtTime reads a "HH:MM" time of day.
func ParseAtTime(value string) (uint, uint, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", value)
	}
	return uint(t.Hour()), uint(t.Minute()), nil
}

// StartAutoScheduleJob generates sessions once a day at the given "HH:MM".
func StartAutoScheduleJob(generator Generator, locker cache.Locker, at string, clock clockwork.Clock, log *zap.Logger) (gocron.Scheduler, gocron.Job, error) {
	hour, minute, err := ParseAtTime(at)
	if err != nil {
		return nil, nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, nil, err
	}

	job, err := s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(hour, minute, 0),
			),
		),
		gocron.NewTask(func() {
			autoSchedule(generator, locker, log)
		}),
		gocron.WithName("auto-schedule"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, nil, err
	}

	s.Start()
	log.Info("auto schedule job started", zap.String("at", at))
	return s, job, nil
}

func autoSchedule(generator Generator, locker cache.Locker, log *zap.Logger) {
	ctx := context.Background()
	err := RunExclusive(ctx, locker, ScheduleLock, func(ctx context.Context) error {
		created, err := generator.Generate(ctx)
		if err != nil {
			return err
		}
		log.Info("auto schedule finished", zap.Int("sessions", created))
		return nil
	})
	if errors.Is(err, cache.ErrLocked) {
		log.Info("auto schedule skipped, another run in progress")
		return
	}
	if err != nil {
		log.Error("auto schedule failed", zap.Error(err))
	}
}
