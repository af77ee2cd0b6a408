package common

import (
	"github.com/speedkit/lcpboost/models"
	"github.com/speedkit/lcpboost/pkg/beacon"
	"github.com/speedkit/lcpboost/pkg/injector"
	"github.com/speedkit/lcpboost/pkg/options"
	"github.com/speedkit/lcpboost/pkg/storage"
)

// NewOptimizer assembles the injector pipeline from the loaded config and
// an open metadata store. The gate is wide open; the CLI and HTTP server
// have no per-request eligibility signal of their own.
func NewOptimizer(cfg *models.Config, store injector.RowSource) *injector.Optimizer {
	return &injector.Optimizer{
		HomeURL: cfg.HomeURL,
		Store:   store,
		Options: options.FromConfig(cfg),
		Gate:    injector.StaticGate{Allow: true},
		Probe:   &storage.Storage{},
		Beacon: beacon.Config{
			ScriptURL: cfg.BeaconScriptURL,
			AjaxURL:   cfg.AjaxURL,
			Filters:   options.NewFilters(),
		},
		BeaconScriptPath: cfg.BeaconScript,
	}
}
