package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// MenuServiceHandler serves the read-only menu.
type MenuServiceHandler interface {
	GetMenu(context.Context, *connect.Request[GetMenuRequest]) (*connect.Response[GetMenuResponse], error)
	GetItem(context.Context, *connect.Request[GetItemRequest]) (*connect.Response[GetItemResponse], error)
	Search(context.Context, *connect.Request[SearchRequest]) (*connect.Response[SearchResponse], error)
	GetRecommendations(context.Context, *connect.Request[GetRecommendationsRequest]) (*connect.Response[GetRecommendationsResponse], error)
}

// OrderServiceHandler serves the diner's cart, favorites, checkout and profile.
type OrderServiceHandler interface {
	GetCart(context.Context, *connect.Request[GetCartRequest]) (*connect.Response[GetCartResponse], error)
	AddToCart(context.Context, *connect.Request[AddToCartRequest]) (*connect.Response[AddToCartResponse], error)
	RemoveFromCart(context.Context, *connect.Request[RemoveFromCartRequest]) (*connect.Response[RemoveFromCartResponse], error)
	ClearCart(context.Context, *connect.Request[ClearCartRequest]) (*connect.Response[ClearCartResponse], error)
	ToggleFavorite(context.Context, *connect.Request[ToggleFavoriteRequest]) (*connect.Response[ToggleFavoriteResponse], error)
	ListFavorites(context.Context, *connect.Request[ListFavoritesRequest]) (*connect.Response[ListFavoritesResponse], error)
	RemoveFavorites(context.Context, *connect.Request[RemoveFavoritesRequest]) (*connect.Response[RemoveFavoritesResponse], error)
	Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error)
	ListHistory(context.Context, *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error)
	GetReceipt(context.Context, *connect.Request[GetReceiptRequest]) (*connect.Response[GetReceiptResponse], error)
	GetProfile(context.Context, *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error)
	SetUserName(context.Context, *connect.Request[SetUserNameRequest]) (*connect.Response[SetUserNameResponse], error)
	SetGuestCount(context.Context, *connect.Request[SetGuestCountRequest]) (*connect.Response[SetGuestCountResponse], error)
}

// PreferenceServiceHandler serves persisted settings.
type PreferenceServiceHandler interface {
	GetLanguage(context.Context, *connect.Request[GetLanguageRequest]) (*connect.Response[GetLanguageResponse], error)
	SetLanguage(context.Context, *connect.Request[SetLanguageRequest]) (*connect.Response[SetLanguageResponse], error)
}

// AuthServiceHandler serves registration and login.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
}

// NewMenuServiceHandler builds an HTTP handler for svc. The returned path
// is the prefix to mount it on.
func NewMenuServiceHandler(svc MenuServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(MenuServiceGetMenuProcedure, connect.NewUnaryHandler(MenuServiceGetMenuProcedure, svc.GetMenu, opts...))
	mux.Handle(MenuServiceGetItemProcedure, connect.NewUnaryHandler(MenuServiceGetItemProcedure, svc.GetItem, opts...))
	mux.Handle(MenuServiceSearchProcedure, connect.NewUnaryHandler(MenuServiceSearchProcedure, svc.Search, opts...))
	mux.Handle(MenuServiceGetRecommendationsProcedure, connect.NewUnaryHandler(MenuServiceGetRecommendationsProcedure, svc.GetRecommendations, opts...))
	return "/" + MenuServiceName + "/", mux
}

// NewOrderServiceHandler builds an HTTP handler for svc.
func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(OrderServiceGetCartProcedure, connect.NewUnaryHandler(OrderServiceGetCartProcedure, svc.GetCart, opts...))
	mux.Handle(OrderServiceAddToCartProcedure, connect.NewUnaryHandler(OrderServiceAddToCartProcedure, svc.AddToCart, opts...))
	mux.Handle(OrderServiceRemoveFromCartProcedure, connect.NewUnaryHandler(OrderServiceRemoveFromCartProcedure, svc.RemoveFromCart, opts...))
	mux.Handle(OrderServiceClearCartProcedure, connect.NewUnaryHandler(OrderServiceClearCartProcedure, svc.ClearCart, opts...))
	mux.Handle(OrderServiceToggleFavoriteProcedure, connect.NewUnaryHandler(OrderServiceToggleFavoriteProcedure, svc.ToggleFavorite, opts...))
	mux.Handle(OrderServiceListFavoritesProcedure, connect.NewUnaryHandler(OrderServiceListFavoritesProcedure, svc.ListFavorites, opts...))
	mux.Handle(OrderServiceRemoveFavoritesProcedure, connect.NewUnaryHandler(OrderServiceRemoveFavoritesProcedure, svc.RemoveFavorites, opts...))
	mux.Handle(OrderServiceCheckoutProcedure, connect.NewUnaryHandler(OrderServiceCheckoutProcedure, svc.Checkout, opts...))
	mux.Handle(OrderServiceListHistoryProcedure, connect.NewUnaryHandler(OrderServiceListHistoryProcedure, svc.ListHistory, opts...))
	mux.Handle(OrderServiceGetReceiptProcedure, connect.NewUnaryHandler(OrderServiceGetReceiptProcedure, svc.GetReceipt, opts...))
	mux.Handle(OrderServiceGetProfileProcedure, connect.NewUnaryHandler(OrderServiceGetProfileProcedure, svc.GetProfile, opts...))
	mux.Handle(OrderServiceSetUserNameProcedure, connect.NewUnaryHandler(OrderServiceSetUserNameProcedure, svc.SetUserName, opts...))
	mux.Handle(OrderServiceSetGuestCountProcedure, connect.NewUnaryHandler(OrderServiceSetGuestCountProcedure, svc.SetGuestCount, opts...))
	return "/" + OrderServiceName + "/", mux
}

// NewPreferenceServiceHandler builds an HTTP handler for svc.
func NewPreferenceServiceHandler(svc PreferenceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(PreferenceServiceGetLanguageProcedure, connect.NewUnaryHandler(PreferenceServiceGetLanguageProcedure, svc.GetLanguage, opts...))
	mux.Handle(PreferenceServiceSetLanguageProcedure, connect.NewUnaryHandler(PreferenceServiceSetLanguageProcedure, svc.SetLanguage, opts...))
	return "/" + PreferenceServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceLogoutProcedure, connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...))
	return "/" + AuthServiceName + "/", mux
}
