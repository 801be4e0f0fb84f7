package server

import (
	"context"

	"icon-registry/internal/common/logger"
	"icon-registry/internal/common/metrics"
	"icon-registry/internal/icons/builder"
	"icon-registry/internal/icons/fallback"
	"icon-registry/pkg/registry"
)

const (
	OriginArtifact = "artifact"
	OriginFallback = "fallback"
)

// StaticRegistry loads the generated registry artifact at path. A missing,
// unreadable or invalid artifact is replaced by a registry built from the
// bundled fallback set, so callers always get a usable table.
func StaticRegistry(ctx context.Context, path string, log logger.Logger) (*registry.Registry, string) {
	log = logger.OrNoOp(log)

	reg, origin := loadArtifact(path, log)
	if reg == nil {
		reg = builder.New(log).Build(ctx, fallback.Bundled())
		origin = OriginFallback
	}

	metrics.RegistryEntries.Set(float64(reg.Count()))
	log.Info("static registry ready", map[string]interface{}{
		"origin":  origin,
		"entries": reg.Count(),
		"path":    path,
	})
	return reg, origin
}

func loadArtifact(path string, log logger.Logger) (*registry.Registry, string) {
	if path == "" {
		return nil, ""
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("registry artifact unavailable, using fallback set", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, ""
	}
	if err := reg.Validate(); err != nil {
		log.Warn("registry artifact invalid, using fallback set", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, ""
	}
	return reg, OriginArtifact
}
