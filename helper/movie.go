package helper

import (
	"cinema_scheduler/cache"
	"cinema_scheduler/service"
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Importer interface {
	Import(ctx context.Context) (service.ImportResult, error)
}

// StartCatalogImportJob refreshes the movie catalog on a cron spec such as "0 3 * * 1".
func StartCatalogImportJob(importer Importer, locker cache.Locker, spec string, log *zap.Logger) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := scheduler.AddFunc(spec, func() {
		importCatalog(importer, locker, log)
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Info("catalog import job started", zap.String("spec", spec))
	return scheduler, nil
}

func importCatalog(importer Importer, locker cache.Locker, log *zap.Logger) {
	err := RunExclusive(context.Background(), locker, ImportLock, func(ctx context.Context) error {
		result, err := importer.Import(ctx)
		if err != nil {
			log.Error("catalog import failed", zap.Int("imported", result.Imported), zap.Error(err))
			return nil
		}
		log.Info("catalog import finished", zap.Int("imported", result.Imported))
		return nil
	})
	if errors.Is(err, cache.ErrLocked) {
		log.Info("catalog import skipped, another run in progress")
	}
}

// StopCatalogImportJob waits for a running import to finish.
func StopCatalogImportJob(scheduler *cron.Cron) {
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
}
