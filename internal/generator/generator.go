// Package generator runs one end-to-end generation: acquire a catalogue,
// build the registry, write the JSON artifact and the Go accessor package.
package generator

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/google/uuid"

	"icon-registry/internal/codegen"
	"icon-registry/internal/common/config"
	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/icons/builder"
	"icon-registry/internal/icons/catalogue"
	"icon-registry/internal/icons/fallback"
	"icon-registry/pkg/registry"
)

// Catalogue origins reported by Run.
const (
	OriginUpstream = "upstream"
	OriginSnapshot = "snapshot"
	OriginFallback = "fallback"
)

type Fetcher interface {
	FetchCatalogue(ctx context.Context) (catalogue.Catalogue, error)
}

type Snapshots interface {
	Load(ctx context.Context) (catalogue.Catalogue, error)
	Save(ctx context.Context, cat catalogue.Catalogue) error
}

type RunOptions struct {
	// Offline skips the upstream fetch.
	Offline bool
	// SaveSnapshot stores a freshly fetched catalogue.
	SaveSnapshot bool
}

type Report struct {
	RunID         string `json:"run_id"`
	Origin        string `json:"origin"`
	Entries       int    `json:"entries"`
	RegistryPath  string `json:"registry_path"`
	SourcePath    string `json:"source_path"`
	SnapshotSaved bool   `json:"snapshot_saved"`
}

// Generator wires the suppliers to the builder and emitters. upstream and
// snapshots may be nil.
type Generator struct {
	upstream  Fetcher
	snapshots Snapshots
	cfg       config.GeneratorConfig
	logger    logger.Logger
}

func New(cfg config.GeneratorConfig, upstream Fetcher, snapshots Snapshots, log logger.Logger) *Generator {
	return &Generator{
		upstream:  upstream,
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger.OrNoOp(log),
	}
}

func (g *Generator) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := g.logger.WithFields(map[string]interface{}{"runId": report.RunID})

	cat, origin := g.acquire(ctx, opts, log)
	report.Origin = origin

	reg := builder.New(log).Build(ctx, cat)
	report.Entries = reg.Count()

	if err := registry.SaveRegistry(reg, g.cfg.RegistryPath); err != nil {
		return report, err
	}
	report.RegistryPath = g.cfg.RegistryPath

	path, err := codegen.WriteFile(reg, g.cfg.OutputDir, g.cfg.FileName, codegen.Options{
		PackageName: g.cfg.PackageName,
	})
	if err != nil {
		return report, err
	}
	report.SourcePath = filepath.Clean(path)

	if origin == OriginUpstream && opts.SaveSnapshot && g.snapshots != nil {
		if err := g.snapshots.Save(ctx, cat); err != nil {
			log.Warn("snapshot not refreshed", map[string]interface{}{
				"errorCode": apperrors.CodeOf(err),
				"error":     err.Error(),
			})
		} else {
			report.SnapshotSaved = true
		}
	}

	log.Info("generation complete", map[string]interface{}{
		"origin":   report.Origin,
		"entries":  report.Entries,
		"registry": report.RegistryPath,
		"source":   report.SourcePath,
	})
	return report, nil
}

// acquire returns the first catalogue available from upstream, snapshot and
// the bundled set, in that order.
func (g *Generator) acquire(ctx context.Context, opts RunOptions, log logger.Logger) (catalogue.Catalogue, string) {
	if !opts.Offline && g.upstream != nil {
		cat, err := g.upstream.FetchCatalogue(ctx)
		if err == nil && len(cat) > 0 {
			return cat, OriginUpstream
		}
		if err == nil {
			err = apperrors.NewSupplierUnavailableError("upstream", errors.New("empty catalogue"))
		}
		log.Warn("upstream catalogue unavailable", map[string]interface{}{
			"errorCode": apperrors.CodeOf(err),
			"error":     err.Error(),
		})
	}

	if g.snapshots != nil {
		cat, err := g.snapshots.Load(ctx)
		switch {
		case err != nil:
			log.Warn("snapshot unavailable", map[string]interface{}{
				"errorCode": apperrors.CodeOf(err),
				"error":     err.Error(),
			})
		case len(cat) == 0:
			log.Info("snapshot empty", nil)
		default:
			return cat, OriginSnapshot
		}
	}

	return fallback.Bundled(), OriginFallback
}
