package service

import (
	"context"
	"fmt"

	"github.com/indiverse/heritagebot/internal/config"
	"github.com/indiverse/heritagebot/internal/domain"
	"github.com/indiverse/heritagebot/internal/knowledge"
	"github.com/indiverse/heritagebot/internal/repository"
	"go.uber.org/zap"
)

// AdminService handles admin operations
type AdminService struct {
	cfg         *config.Config
	catalogRepo *repository.CatalogRepository
	chatService *ChatService
	seedService *SeedService
	logger      *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	cfg *config.Config,
	catalogRepo *repository.CatalogRepository,
	chatService *ChatService,
	seedService *SeedService,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		cfg:         cfg,
		catalogRepo: catalogRepo,
		chatService: chatService,
		seedService: seedService,
		logger:      logger,
	}
}

// GetStats reports knowledge, conversation and catalog sizes
func (s *AdminService) GetStats(ctx context.Context) (*domain.Stats, error) {
	kb := s.chatService.KnowledgeBase()

	counts, err := s.catalogRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		Regions:       len(kb.Regions()),
		Intents:       len(kb.Intents),
		Conversations: s.chatService.Conversations(),
		TotalChats:    s.chatService.TotalChats(),
		Catalog:       counts,
	}, nil
}

// ReloadKnowledge re-reads the knowledge document. A bad document leaves the
// current one answering.
func (s *AdminService) ReloadKnowledge(ctx context.Context) (*domain.Stats, error) {
	kb, err := knowledge.Load(s.cfg.Knowledge.Path)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", s.cfg.Knowledge.Path, err)
	}
	s.chatService.SwapKnowledge(kb)
	s.logger.Info("knowledge base reloaded",
		zap.String("path", s.cfg.Knowledge.Path),
		zap.Int("regions", len(kb.Regions())),
		zap.Int("intents", len(kb.Intents)),
	)
	return s.GetStats(ctx)
}

// SeedCatalog reloads the catalog datasets from the configured directory
func (s *AdminService) SeedCatalog(ctx context.Context) (*SeedReport, error) {
	return s.seedService.SeedDirectory(ctx, s.cfg.Knowledge.CatalogDir)
}
