package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icon-registry/internal/common/config"
	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/icons/catalogue"
	"icon-registry/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeFetcher struct {
	cat   catalogue.Catalogue
	err   error
	calls int
}

func (f *fakeFetcher) FetchCatalogue(context.Context) (catalogue.Catalogue, error) {
	f.calls++
	return f.cat, f.err
}

type fakeSnapshots struct {
	stored  catalogue.Catalogue
	loadErr error
	saveErr error
	saved   catalogue.Catalogue
}

func (f *fakeSnapshots) Load(context.Context) (catalogue.Catalogue, error) {
	return f.stored, f.loadErr
}

func (f *fakeSnapshots) Save(_ context.Context, cat catalogue.Catalogue) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = cat
	return nil
}

func createTestConfig(t *testing.T) config.GeneratorConfig {
	dir := t.TempDir()
	return config.GeneratorConfig{
		OutputDir:    filepath.Join(dir, "pkg", "lucide"),
		PackageName:  "lucide",
		FileName:     "icons_gen.go",
		RegistryPath: filepath.Join(dir, "configs", "icon-registry.json"),
	}
}

func createUpstreamCatalogue() catalogue.Catalogue {
	return catalogue.Catalogue{
		"home":   `<svg><path d="M0 0"/></svg>`,
		"rocket": `<svg><path d="R"/></svg>`,
	}
}

// ==========================
// Catalogue Acquisition
// ==========================

func TestGenerator_Run_Origins(t *testing.T) {
	unavailable := apperrors.NewSupplierUnavailableError("test", errors.New("dial tcp: refused"))

	tests := []struct {
		name      string
		fetcher   *fakeFetcher
		snapshots *fakeSnapshots
		opts      RunOptions
		origin    string
		names     []string
	}{
		{
			name:    "upstream",
			fetcher: &fakeFetcher{cat: createUpstreamCatalogue()},
			origin:  OriginUpstream,
			names:   []string{"home", "rocket"},
		},
		{
			name:      "upstream down uses snapshot",
			fetcher:   &fakeFetcher{err: unavailable},
			snapshots: &fakeSnapshots{stored: catalogue.Catalogue{"snap": "<s/>"}},
			origin:    OriginSnapshot,
			names:     []string{"snap"},
		},
		{
			name:      "upstream empty uses snapshot",
			fetcher:   &fakeFetcher{cat: catalogue.Catalogue{}},
			snapshots: &fakeSnapshots{stored: catalogue.Catalogue{"snap": "<s/>"}},
			origin:    OriginSnapshot,
			names:     []string{"snap"},
		},
		{
			name:      "everything down uses fallback",
			fetcher:   &fakeFetcher{err: unavailable},
			snapshots: &fakeSnapshots{loadErr: apperrors.NewSnapshotFailedError("load", errors.New("no table"))},
			origin:    OriginFallback,
			names:     []string{"heart", "home", "search", "star", "user"},
		},
		{
			name:      "empty snapshot uses fallback",
			snapshots: &fakeSnapshots{stored: catalogue.Catalogue{}},
			origin:    OriginFallback,
			names:     []string{"heart", "home", "search", "star", "user"},
		},
		{
			name:      "offline skips upstream",
			fetcher:   &fakeFetcher{cat: createUpstreamCatalogue()},
			snapshots: &fakeSnapshots{stored: catalogue.Catalogue{"snap": "<s/>"}},
			opts:      RunOptions{Offline: true},
			origin:    OriginSnapshot,
			names:     []string{"snap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig(t)
			var fetcher Fetcher
			if tt.fetcher != nil {
				fetcher = tt.fetcher
			}
			var snapshots Snapshots
			if tt.snapshots != nil {
				snapshots = tt.snapshots
			}

			report, err := New(cfg, fetcher, snapshots, logger.NewTestLogger(t)).Run(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.origin, report.Origin)
			assert.Equal(t, len(tt.names), report.Entries)
			assert.NotEmpty(t, report.RunID)

			reg, err := registry.LoadRegistry(cfg.RegistryPath)
			require.NoError(t, err)
			assert.Equal(t, tt.names, reg.Names())
			assert.NoError(t, reg.Validate())

			if tt.opts.Offline {
				assert.Equal(t, 0, tt.fetcher.calls)
			}
		})
	}
}

// ==========================
// Artifacts
// ==========================

func TestGenerator_Run_WritesArtifacts(t *testing.T) {
	cfg := createTestConfig(t)
	gen := New(cfg, &fakeFetcher{cat: createUpstreamCatalogue()}, nil, logger.NewTestLogger(t))

	first, err := gen.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	registryBytes, err := os.ReadFile(first.RegistryPath)
	require.NoError(t, err)
	sourceBytes, err := os.ReadFile(first.SourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(sourceBytes), "func Rocket(")

	second, err := gen.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)

	registryAgain, err := os.ReadFile(second.RegistryPath)
	require.NoError(t, err)
	sourceAgain, err := os.ReadFile(second.SourcePath)
	require.NoError(t, err)

	assert.Equal(t, registryBytes, registryAgain, "registry artifact must be reproducible")
	assert.Equal(t, sourceBytes, sourceAgain, "generated source must be reproducible")
}

func TestGenerator_Run_SnapshotRefresh(t *testing.T) {
	tests := []struct {
		name      string
		fetcher   *fakeFetcher
		snapshots *fakeSnapshots
		opts      RunOptions
		saved     bool
	}{
		{
			name:      "saves fresh upstream catalogue",
			fetcher:   &fakeFetcher{cat: createUpstreamCatalogue()},
			snapshots: &fakeSnapshots{},
			opts:      RunOptions{SaveSnapshot: true},
			saved:     true,
		},
		{
			name:      "not requested",
			fetcher:   &fakeFetcher{cat: createUpstreamCatalogue()},
			snapshots: &fakeSnapshots{},
		},
		{
			name:      "never saves a snapshot-derived catalogue",
			fetcher:   &fakeFetcher{err: errors.New("down")},
			snapshots: &fakeSnapshots{stored: catalogue.Catalogue{"snap": "<s/>"}},
			opts:      RunOptions{SaveSnapshot: true},
		},
		{
			name:      "save failure is not fatal",
			fetcher:   &fakeFetcher{cat: createUpstreamCatalogue()},
			snapshots: &fakeSnapshots{saveErr: errors.New("read-only")},
			opts:      RunOptions{SaveSnapshot: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := New(createTestConfig(t), tt.fetcher, tt.snapshots, logger.NewTestLogger(t)).
				Run(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.saved, report.SnapshotSaved)
			if tt.saved {
				assert.Equal(t, createUpstreamCatalogue(), tt.snapshots.saved)
			}
		})
	}
}

func TestGenerator_Run_UnwritableOutput(t *testing.T) {
	cfg := createTestConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.OutputDir = filepath.Join(blocker, "sub")

	_, err := New(cfg, nil, nil, nil).Run(context.Background(), RunOptions{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCodegenFailed, apperrors.CodeOf(err))
}
