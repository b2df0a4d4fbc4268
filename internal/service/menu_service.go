package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/idine/internal/catalog"
	"github.com/mmynk/idine/internal/storage"
	"github.com/mmynk/idine/pkg/api"
)

// MenuService implements the Connect MenuService.
type MenuService struct {
	menus menus
}

var _ api.MenuServiceHandler = (*MenuService)(nil)

// NewMenuService creates a menu service. prefs may be nil, in which case
// requests without a language get the default menu.
func NewMenuService(catalogs *catalog.Loader, prefs storage.PreferenceStore, logger *slog.Logger) *MenuService {
	return &MenuService{menus: menus{catalogs: catalogs, prefs: prefs, logger: logger}}
}

// GetMenu returns the sections matching the category filter.
func (s *MenuService) GetMenu(ctx context.Context, req *connect.Request[api.GetMenuRequest]) (*connect.Response[api.GetMenuResponse], error) {
	c, lang, err := s.menus.catalog(ctx, req.Msg.Language)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetMenuResponse{
		Language:   string(lang),
		Categories: c.Categories(),
		Sections:   toAPISections(c.Section(req.Msg.Category)),
	}), nil
}

// GetItem returns one dish by identifier.
func (s *MenuService) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	if req.Msg.ItemID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("item_id is required"))
	}
	c, _, err := s.menus.catalog(ctx, req.Msg.Language)
	if err != nil {
		return nil, err
	}

	item, ok := c.Item(req.Msg.ItemID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("menu item %s not found", req.Msg.ItemID))
	}
	return connect.NewResponse(&api.GetItemResponse{Item: toAPIItem(item)}), nil
}

// Search matches dishes by name or description.
func (s *MenuService) Search(ctx context.Context, req *connect.Request[api.SearchRequest]) (*connect.Response[api.SearchResponse], error) {
	c, _, err := s.menus.catalog(ctx, req.Msg.Language)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SearchResponse{Items: toAPIItems(c.Search(req.Msg.Query))}), nil
}

// GetRecommendations returns the Chef's Choice dishes for the carousel.
func (s *MenuService) GetRecommendations(ctx context.Context, req *connect.Request[api.GetRecommendationsRequest]) (*connect.Response[api.GetRecommendationsResponse], error) {
	c, _, err := s.menus.catalog(ctx, req.Msg.Language)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetRecommendationsResponse{Items: toAPIItems(c.Recommendations())}), nil
}
