package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/idine/internal/catalog"
	"github.com/mmynk/idine/internal/middleware"
	"github.com/mmynk/idine/internal/storage"
	"github.com/mmynk/idine/pkg/api"
)

// PreferenceService implements the Connect PreferenceService.
type PreferenceService struct {
	prefs  storage.PreferenceStore
	menus  menus
	logger *slog.Logger
}

var _ api.PreferenceServiceHandler = (*PreferenceService)(nil)

// NewPreferenceService creates a preference service backed by prefs.
func NewPreferenceService(prefs storage.PreferenceStore, logger *slog.Logger) *PreferenceService {
	return &PreferenceService{
		prefs:  prefs,
		menus:  menus{prefs: prefs, logger: logger},
		logger: logger,
	}
}

// GetLanguage returns the saved menu language, or the default.
func (s *PreferenceService) GetLanguage(ctx context.Context, req *connect.Request[api.GetLanguageRequest]) (*connect.Response[api.GetLanguageResponse], error) {
	if middleware.GetUserID(ctx) == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("sign in to read preferences"))
	}
	lang, err := s.menus.language(ctx, "")
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetLanguageResponse{Language: string(lang)}), nil
}

// SetLanguage saves the menu language. Only "en" and "zh" are accepted.
func (s *PreferenceService) SetLanguage(ctx context.Context, req *connect.Request[api.SetLanguageRequest]) (*connect.Response[api.SetLanguageResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("sign in to save preferences"))
	}
	if req.Msg.Language == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("language is required"))
	}
	lang, err := catalog.ParseLanguage(req.Msg.Language)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.prefs.SetPreference(ctx, userID, storage.PreferenceLanguage, string(lang)); err != nil {
		s.logger.Error("Failed to save language", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.logger.Info("Language updated", "user_id", userID, "language", lang)
	return connect.NewResponse(&api.SetLanguageResponse{Language: string(lang)}), nil
}
