package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"churchbook_backend/internals/features/users/auth/service"
	"churchbook_backend/internals/repository"
)

const cleanupTimeout = 30 * time.Second

// StartRefreshCleanup schedules deletion of expired refresh tokens. The caller stops
// the returned cron on shutdown.
func StartRefreshCleanup(store repository.Store, spec string, log *zap.Logger) (*cron.Cron, error) {
	svc := service.NewAuthService(store, nil)
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log})))

	if _, err := c.AddFunc(spec, func() { runCleanup(svc, log) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("[CLEANUP] refresh token cleanup scheduled", zap.String("spec", spec))
	return c, nil
}

func runCleanup(svc *service.AuthService, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	n, err := svc.PurgeExpired(ctx)
	if err != nil {
		log.Error("[CLEANUP ERROR] delete expired refresh tokens", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("[CLEANUP] expired refresh tokens deleted", zap.Int64("count", n))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ log *zap.Logger }

func (l cronLogger) Info(msg string, kv ...interface{}) {
	l.log.Sugar().Infow(msg, kv...)
}

func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.log.Sugar().Errorw(msg, append(kv, "error", err)...)
}
