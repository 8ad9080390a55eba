// Package di wires the application graph.
package di

import (
	"github.com/olejniktut/dc-landscaping/internal/config"
	"github.com/olejniktut/dc-landscaping/internal/gateway"
	"github.com/olejniktut/dc-landscaping/internal/records"
	"github.com/olejniktut/dc-landscaping/internal/session"
	"github.com/olejniktut/dc-landscaping/internal/storage"
	"github.com/olejniktut/dc-landscaping/internal/timer"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

// Container holds all constructed components
type Container struct {
	Config  *config.Config
	Log     *logger.Logger
	Store   storage.Store
	Gateway *gateway.Client
	Session *session.Manager
	Records *records.Service
	Timer   *timer.Engine
}

// NewContainer builds the full graph. The gateway reads the token straight
// from the store, which the session manager writes before updating memory,
// so the two never disagree. Session logout tears the timer down.
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	store, err := storage.NewFileStore(cfg.State.Dir)
	if err != nil {
		return nil, err
	}

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, store, log)

	sess := session.NewManager(gw, store, log)
	recs := records.New(gw, log)
	eng := timer.New(gw, store, recs, log, timer.WithAuthSink(sess))
	sess.OnLogout(eng.ForceStop)

	return &Container{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Gateway: gw,
		Session: sess,
		Records: recs,
		Timer:   eng,
	}, nil
}
