package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/idine/internal/catalog"
	"github.com/mmynk/idine/internal/middleware"
	"github.com/mmynk/idine/internal/storage"
)

// menus picks the catalog for a request: an explicit language wins, then the
// caller's saved preference, then catalog.DefaultLanguage.
type menus struct {
	catalogs *catalog.Loader
	prefs    storage.PreferenceStore
	logger   *slog.Logger
}

func (m menus) language(ctx context.Context, requested string) (catalog.Language, error) {
	if requested != "" {
		lang, err := catalog.ParseLanguage(requested)
		if err != nil {
			return "", connect.NewError(connect.CodeInvalidArgument, err)
		}
		return lang, nil
	}

	userID := middleware.GetUserID(ctx)
	if userID == "" || m.prefs == nil {
		return catalog.DefaultLanguage, nil
	}

	saved, err := m.prefs.GetPreference(ctx, userID, storage.PreferenceLanguage)
	if errors.Is(err, storage.ErrNotFound) {
		return catalog.DefaultLanguage, nil
	}
	if err != nil {
		m.logger.Warn("Failed to read language preference", "user_id", userID, "error", err)
		return catalog.DefaultLanguage, nil
	}

	lang, err := catalog.ParseLanguage(saved)
	if err != nil {
		m.logger.Warn("Ignoring stored language", "user_id", userID, "value", saved)
		return catalog.DefaultLanguage, nil
	}
	return lang, nil
}

func (m menus) catalog(ctx context.Context, requested string) (*catalog.Catalog, catalog.Language, error) {
	lang, err := m.language(ctx, requested)
	if err != nil {
		return nil, "", err
	}
	c, err := m.catalogs.Get(lang)
	if err != nil {
		m.logger.Error("Failed to load catalog", "language", lang, "error", err)
		return nil, "", connect.NewError(connect.CodeInternal, err)
	}
	return c, lang, nil
}
