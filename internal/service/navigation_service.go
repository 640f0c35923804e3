package service

import (
	"context"

	"github.com/indiverse/heritagebot/internal/breadcrumb"
)

// NavigationService labels app paths for the breadcrumb bar
type NavigationService struct {
	resolver *breadcrumb.Resolver
}

// NewNavigationService creates a new navigation service
func NewNavigationService(catalog breadcrumb.Catalog) *NavigationService {
	return &NavigationService{resolver: breadcrumb.NewResolver(catalog)}
}

// Breadcrumbs resolves path into crumbs
func (s *NavigationService) Breadcrumbs(ctx context.Context, path string) ([]breadcrumb.Crumb, error) {
	return s.resolver.Resolve(ctx, path)
}
