package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls every iDine procedure over Connect with the JSON codec.
type Client struct {
	token string

	getMenu            *connect.Client[GetMenuRequest, GetMenuResponse]
	getItem            *connect.Client[GetItemRequest, GetItemResponse]
	search             *connect.Client[SearchRequest, SearchResponse]
	getRecommendations *connect.Client[GetRecommendationsRequest, GetRecommendationsResponse]

	getCart         *connect.Client[GetCartRequest, GetCartResponse]
	addToCart       *connect.Client[AddToCartRequest, AddToCartResponse]
	removeFromCart  *connect.Client[RemoveFromCartRequest, RemoveFromCartResponse]
	clearCart       *connect.Client[ClearCartRequest, ClearCartResponse]
	toggleFavorite  *connect.Client[ToggleFavoriteRequest, ToggleFavoriteResponse]
	listFavorites   *connect.Client[ListFavoritesRequest, ListFavoritesResponse]
	removeFavorites *connect.Client[RemoveFavoritesRequest, RemoveFavoritesResponse]
	checkout        *connect.Client[CheckoutRequest, CheckoutResponse]
	listHistory     *connect.Client[ListHistoryRequest, ListHistoryResponse]
	getReceipt      *connect.Client[GetReceiptRequest, GetReceiptResponse]
	getProfile      *connect.Client[GetProfileRequest, GetProfileResponse]
	setUserName     *connect.Client[SetUserNameRequest, SetUserNameResponse]
	setGuestCount   *connect.Client[SetGuestCountRequest, SetGuestCountResponse]

	getLanguage *connect.Client[GetLanguageRequest, GetLanguageResponse]
	setLanguage *connect.Client[SetLanguageRequest, SetLanguageResponse]

	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
	logout   *connect.Client[LogoutRequest, LogoutResponse]
}

// NewClient builds a client for the server at baseURL, e.g. "http://localhost:8080".
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &Client{
		getMenu:            connect.NewClient[GetMenuRequest, GetMenuResponse](httpClient, baseURL+MenuServiceGetMenuProcedure, opts...),
		getItem:            connect.NewClient[GetItemRequest, GetItemResponse](httpClient, baseURL+MenuServiceGetItemProcedure, opts...),
		search:             connect.NewClient[SearchRequest, SearchResponse](httpClient, baseURL+MenuServiceSearchProcedure, opts...),
		getRecommendations: connect.NewClient[GetRecommendationsRequest, GetRecommendationsResponse](httpClient, baseURL+MenuServiceGetRecommendationsProcedure, opts...),

		getCart:         connect.NewClient[GetCartRequest, GetCartResponse](httpClient, baseURL+OrderServiceGetCartProcedure, opts...),
		addToCart:       connect.NewClient[AddToCartRequest, AddToCartResponse](httpClient, baseURL+OrderServiceAddToCartProcedure, opts...),
		removeFromCart:  connect.NewClient[RemoveFromCartRequest, RemoveFromCartResponse](httpClient, baseURL+OrderServiceRemoveFromCartProcedure, opts...),
		clearCart:       connect.NewClient[ClearCartRequest, ClearCartResponse](httpClient, baseURL+OrderServiceClearCartProcedure, opts...),
		toggleFavorite:  connect.NewClient[ToggleFavoriteRequest, ToggleFavoriteResponse](httpClient, baseURL+OrderServiceToggleFavoriteProcedure, opts...),
		listFavorites:   connect.NewClient[ListFavoritesRequest, ListFavoritesResponse](httpClient, baseURL+OrderServiceListFavoritesProcedure, opts...),
		removeFavorites: connect.NewClient[RemoveFavoritesRequest, RemoveFavoritesResponse](httpClient, baseURL+OrderServiceRemoveFavoritesProcedure, opts...),
		checkout:        connect.NewClient[CheckoutRequest, CheckoutResponse](httpClient, baseURL+OrderServiceCheckoutProcedure, opts...),
		listHistory:     connect.NewClient[ListHistoryRequest, ListHistoryResponse](httpClient, baseURL+OrderServiceListHistoryProcedure, opts...),
		getReceipt:      connect.NewClient[GetReceiptRequest, GetReceiptResponse](httpClient, baseURL+OrderServiceGetReceiptProcedure, opts...),
		getProfile:      connect.NewClient[GetProfileRequest, GetProfileResponse](httpClient, baseURL+OrderServiceGetProfileProcedure, opts...),
		setUserName:     connect.NewClient[SetUserNameRequest, SetUserNameResponse](httpClient, baseURL+OrderServiceSetUserNameProcedure, opts...),
		setGuestCount:   connect.NewClient[SetGuestCountRequest, SetGuestCountResponse](httpClient, baseURL+OrderServiceSetGuestCountProcedure, opts...),

		getLanguage: connect.NewClient[GetLanguageRequest, GetLanguageResponse](httpClient, baseURL+PreferenceServiceGetLanguageProcedure, opts...),
		setLanguage: connect.NewClient[SetLanguageRequest, SetLanguageResponse](httpClient, baseURL+PreferenceServiceSetLanguageProcedure, opts...),

		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout:   connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
	}
}

// WithToken returns a client that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	out := *c
	out.token = token
	return &out
}

func call[Req, Res any](ctx context.Context, c *Client, client *connect.Client[Req, Res], msg *Req) (*Res, error) {
	req := connect.NewRequest(msg)
	if c.token != "" {
		req.Header().Set("Authorization", "Bearer "+c.token)
	}
	resp, err := client.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) GetMenu(ctx context.Context, req *GetMenuRequest) (*GetMenuResponse, error) {
	return call(ctx, c, c.getMenu, req)
}

func (c *Client) GetItem(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	return call(ctx, c, c.getItem, req)
}

func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	return call(ctx, c, c.search, req)
}

func (c *Client) GetRecommendations(ctx context.Context, req *GetRecommendationsRequest) (*GetRecommendationsResponse, error) {
	return call(ctx, c, c.getRecommendations, req)
}

func (c *Client) GetCart(ctx context.Context, req *GetCartRequest) (*GetCartResponse, error) {
	return call(ctx, c, c.getCart, req)
}

func (c *Client) AddToCart(ctx context.Context, req *AddToCartRequest) (*AddToCartResponse, error) {
	return call(ctx, c, c.addToCart, req)
}

func (c *Client) RemoveFromCart(ctx context.Context, req *RemoveFromCartRequest) (*RemoveFromCartResponse, error) {
	return call(ctx, c, c.removeFromCart, req)
}

func (c *Client) ClearCart(ctx context.Context, req *ClearCartRequest) (*ClearCartResponse, error) {
	return call(ctx, c, c.clearCart, req)
}

func (c *Client) ToggleFavorite(ctx context.Context, req *ToggleFavoriteRequest) (*ToggleFavoriteResponse, error) {
	return call(ctx, c, c.toggleFavorite, req)
}

func (c *Client) ListFavorites(ctx context.Context, req *ListFavoritesRequest) (*ListFavoritesResponse, error) {
	return call(ctx, c, c.listFavorites, req)
}

func (c *Client) RemoveFavorites(ctx context.Context, req *RemoveFavoritesRequest) (*RemoveFavoritesResponse, error) {
	return call(ctx, c, c.removeFavorites, req)
}

func (c *Client) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	return call(ctx, c, c.checkout, req)
}

func (c *Client) ListHistory(ctx context.Context, req *ListHistoryRequest) (*ListHistoryResponse, error) {
	return call(ctx, c, c.listHistory, req)
}

func (c *Client) GetReceipt(ctx context.Context, req *GetReceiptRequest) (*GetReceiptResponse, error) {
	return call(ctx, c, c.getReceipt, req)
}

func (c *Client) GetProfile(ctx context.Context, req *GetProfileRequest) (*GetProfileResponse, error) {
	return call(ctx, c, c.getProfile, req)
}

func (c *Client) SetUserName(ctx context.Context, req *SetUserNameRequest) (*SetUserNameResponse, error) {
	return call(ctx, c, c.setUserName, req)
}

func (c *Client) SetGuestCount(ctx context.Context, req *SetGuestCountRequest) (*SetGuestCountResponse, error) {
	return call(ctx, c, c.setGuestCount, req)
}

func (c *Client) GetLanguage(ctx context.Context, req *GetLanguageRequest) (*GetLanguageResponse, error) {
	return call(ctx, c, c.getLanguage, req)
}

func (c *Client) SetLanguage(ctx context.Context, req *SetLanguageRequest) (*SetLanguageResponse, error) {
	return call(ctx, c, c.setLanguage, req)
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	return call(ctx, c, c.register, req)
}

func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return call(ctx, c, c.login, req)
}

func (c *Client) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	return call(ctx, c, c.logout, req)
}
