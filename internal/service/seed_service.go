package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/indiverse/heritagebot/internal/domain"
	"github.com/indiverse/heritagebot/internal/repository"
	"go.uber.org/zap"
)

// SeedReport counts the entries written per dataset. A dataset whose file
// was missing is absent from Seeded.
type SeedReport struct {
	Seeded  map[string]int `json:"seeded"`
	Skipped []string       `json:"skipped,omitempty"`
}

// SeedService loads the static catalog datasets into the catalog database
type SeedService struct {
	catalogRepo *repository.CatalogRepository
	logger      *zap.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(catalogRepo *repository.CatalogRepository, logger *zap.Logger) *SeedService {
	return &SeedService{catalogRepo: catalogRepo, logger: logger}
}

type dataset struct {
	file string
	load func(ctx context.Context, data []byte) (int, error)
}

// SeedDirectory replaces each dataset found in dir. Missing files are skipped.
func (s *SeedService) SeedDirectory(ctx context.Context, dir string) (*SeedReport, error) {
	datasets := []dataset{
		{domain.MonumentsFile, s.seedMonuments},
		{domain.BlogsFile, s.seedBlogs},
		{domain.StatesFile, s.seedStates},
		{domain.ToursFile, s.seedTours},
	}

	report := &SeedReport{Seeded: make(map[string]int)}
	for _, ds := range datasets {
		path := filepath.Join(dir, ds.file)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("catalog dataset not found, skipping", zap.String("path", path))
			report.Skipped = append(report.Skipped, ds.file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		n, err := ds.load(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", ds.file, err)
		}
		report.Seeded[ds.file] = n
		s.logger.Info("seeded catalog dataset", zap.String("file", ds.file), zap.Int("count", n))
	}

	return report, nil
}

func (s *SeedService) seedMonuments(ctx context.Context, data []byte) (int, error) {
	entries, err := decodeArray(data)
	if err != nil {
		return 0, err
	}
	monuments := make([]domain.Monument, 0, len(entries))
	for i, raw := range entries {
		var m domain.Monument
		if err := json.Unmarshal(raw, &m); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		m.Raw = raw
		monuments = append(monuments, m)
	}
	return s.catalogRepo.ReplaceMonuments(ctx, monuments)
}

func (s *SeedService) seedBlogs(ctx context.Context, data []byte) (int, error) {
	entries, err := decodeArray(data)
	if err != nil {
		return 0, err
	}
	blogs := make([]domain.Blog, 0, len(entries))
	for i, raw := range entries {
		var b domain.Blog
		if err := json.Unmarshal(raw, &b); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		b.Raw = raw
		blogs = append(blogs, b)
	}
	return s.catalogRepo.ReplaceBlogs(ctx, blogs)
}

// seedStates reads the states document, an object keyed by state URL key
func (s *SeedService) seedStates(ctx context.Context, data []byte) (int, error) {
	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(data, &byKey); err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	states := make([]domain.State, 0, len(keys))
	for _, k := range keys {
		var st domain.State
		if err := json.Unmarshal(byKey[k], &st); err != nil {
			return 0, fmt.Errorf("state %q: %w", k, err)
		}
		st.Key = k
		st.Raw = byKey[k]
		states = append(states, st)
	}
	return s.catalogRepo.ReplaceStates(ctx, states)
}

func (s *SeedService) seedTours(ctx context.Context, data []byte) (int, error) {
	entries, err := decodeArray(data)
	if err != nil {
		return 0, err
	}
	tours := make([]domain.Tour, 0, len(entries))
	for i, raw := range entries {
		var t domain.Tour
		if err := json.Unmarshal(raw, &t); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		t.Raw = raw
		tours = append(tours, t)
	}
	return s.catalogRepo.ReplaceTours(ctx, tours)
}

func decodeArray(data []byte) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
