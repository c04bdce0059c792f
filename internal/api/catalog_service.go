package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"scenarr/internal/catalog"
	"scenarr/internal/matching"
)

// CatalogStore is the persistence surface used by CatalogService.
type CatalogStore interface {
	matching.CatalogStore
	ImportSite(ctx context.Context, doc catalog.SiteImport) (*catalog.Site, bool, error)
	Collection(ctx context.Context) ([]catalog.SiteCollection, error)
	Sites(ctx context.Context) ([]catalog.SiteSummary, error)
	RemoveSite(ctx context.Context, siteUUID string) error
	RemoveScene(ctx context.Context, id int64) error
	MatchScene(ctx context.Context, id int64, path string) error
	SetHomeDirectory(ctx context.Context, siteUUID, dir string) error
}

// Suggester produces match candidates for a site.
type Suggester interface {
	Suggest(ctx context.Context, siteUUID string, tolerance int) (matching.Result, error)
}

// CatalogService exposes catalog operations for API consumers.
type CatalogService struct {
	store            CatalogStore
	suggester        Suggester
	defaultTolerance int
}

// NewCatalogService constructs a service backed by store and suggester.
func NewCatalogService(store CatalogStore, suggester Suggester, defaultTolerance int) *CatalogService {
	return &CatalogService{store: store, suggester: suggester, defaultTolerance: defaultTolerance}
}

// Collection returns every site with its scenes.
func (s *CatalogService) Collection(ctx context.Context) ([]catalog.SiteCollection, error) {
	return s.store.Collection(ctx)
}

// Sites returns site summaries.
func (s *CatalogService) Sites(ctx context.Context) ([]catalog.SiteSummary, error) {
	return s.store.Sites(ctx)
}

// AddSite imports a site document, replacing the scenes of an existing site.
func (s *CatalogService) AddSite(ctx context.Context, doc catalog.SiteImport) (AddSiteResponse, error) {
	site, created, err := s.store.ImportSite(ctx, doc)
	if err != nil {
		return AddSiteResponse{}, err
	}
	message := "Site and scenes updated successfully!"
	if created {
		message = "Site and scenes added successfully!"
	}
	return AddSiteResponse{Message: message, UUID: site.UUID, Created: created, Scenes: len(doc.Scenes)}, nil
}

// RemoveSite deletes a site and its scenes.
func (s *CatalogService) RemoveSite(ctx context.Context, siteUUID string) (MessageResponse, error) {
	if err := s.store.RemoveSite(ctx, strings.TrimSpace(siteUUID)); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: "Site and scenes removed successfully!"}, nil
}

// RemoveScene deletes a scene.
func (s *CatalogService) RemoveScene(ctx context.Context, id int64) (MessageResponse, error) {
	if err := s.store.RemoveScene(ctx, id); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: "Scene removed successfully!"}, nil
}

// MatchScene records the confirmed file for a scene.
func (s *CatalogService) MatchScene(ctx context.Context, req MatchSceneRequest) (MessageResponse, error) {
	if req.SceneID <= 0 {
		return MessageResponse{}, fmt.Errorf("%w: scene_id is required", catalog.ErrInvalid)
	}
	if err := s.store.MatchScene(ctx, req.SceneID, req.FilePath); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: "Scene matched successfully!"}, nil
}

// SetHomeDirectory assigns the directory scanned for a site.
func (s *CatalogService) SetHomeDirectory(ctx context.Context, req SetHomeDirectoryRequest) (MessageResponse, error) {
	if strings.TrimSpace(req.SiteUUID) == "" {
		return MessageResponse{}, fmt.Errorf("%w: site_uuid is required", catalog.ErrInvalid)
	}
	if err := s.store.SetHomeDirectory(ctx, strings.TrimSpace(req.SiteUUID), req.Directory); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: "Home directory set successfully!"}, nil
}

// SuggestMatches scores the site's scenes against its home directory.
func (s *CatalogService) SuggestMatches(ctx context.Context, req SuggestRequest) (matching.Result, error) {
	if strings.TrimSpace(req.SiteUUID) == "" {
		return matching.Result{}, fmt.Errorf("%w: site_uuid is required", catalog.ErrInvalid)
	}
	tolerance := s.defaultTolerance
	if req.Tolerance != nil {
		tolerance = *req.Tolerance
	}
	return s.suggester.Suggest(ctx, strings.TrimSpace(req.SiteUUID), tolerance)
}

// StatusCode maps service errors to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, matching.ErrNoHomeDirectory):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
