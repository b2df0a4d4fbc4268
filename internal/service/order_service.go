package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/idine/internal/calculator"
	"github.com/mmynk/idine/internal/catalog"
	"github.com/mmynk/idine/internal/events"
	"github.com/mmynk/idine/internal/metrics"
	"github.com/mmynk/idine/internal/middleware"
	"github.com/mmynk/idine/internal/models"
	"github.com/mmynk/idine/internal/order"
	"github.com/mmynk/idine/internal/receipt"
	"github.com/mmynk/idine/internal/storage"
	"github.com/mmynk/idine/pkg/api"
)

// OrderServiceDeps are the collaborators of an OrderService.
// Publisher, Receipts and Metrics are optional.
type OrderServiceDeps struct {
	Sessions  *order.Registry
	Catalogs  *catalog.Loader
	Prefs     storage.PreferenceStore
	History   storage.HistoryStore
	Publisher events.Publisher
	Receipts  receipt.Generator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// ClearDelay is how long a finalized cart stays visible before it is
	// cleared. Zero clears before Checkout returns.
	ClearDelay time.Duration
}

// OrderService implements the Connect OrderService on top of one
// order.Store per authenticated diner.
type OrderService struct {
	sessions   *order.Registry
	menus      menus
	history    storage.HistoryStore
	publisher  events.Publisher
	receipts   receipt.Generator
	metrics    *metrics.Metrics
	logger     *slog.Logger
	clearDelay time.Duration
}

var _ api.OrderServiceHandler = (*OrderService)(nil)

// NewOrderService creates an order service.
func NewOrderService(deps OrderServiceDeps) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	receipts := deps.Receipts
	if receipts == nil {
		receipts = receipt.QRGenerator{Size: receipt.DefaultSize}
	}
	return &OrderService{
		sessions:   deps.Sessions,
		menus:      menus{catalogs: deps.Catalogs, prefs: deps.Prefs, logger: logger},
		history:    deps.History,
		publisher:  publisher,
		receipts:   receipts,
		metrics:    deps.Metrics,
		logger:     logger,
		clearDelay: deps.ClearDelay,
	}
}

// session returns the caller's order store.
func (s *OrderService) session(ctx context.Context) (*order.Store, string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, "", connect.NewError(connect.CodeUnauthenticated, errors.New("sign in to order"))
	}
	store, err := s.sessions.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to open order session", "user_id", userID, "error", err)
		return nil, "", connect.NewError(connect.CodeInternal, err)
	}
	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	}
	return store, userID, nil
}

// menuItem resolves an item identifier against the caller's menu.
func (s *OrderService) menuItem(ctx context.Context, itemID, language string) (models.MenuItem, error) {
	if itemID == "" {
		return models.MenuItem{}, connect.NewError(connect.CodeInvalidArgument, errors.New("item_id is required"))
	}
	c, _, err := s.menus.catalog(ctx, language)
	if err != nil {
		return models.MenuItem{}, err
	}
	item, ok := c.Item(itemID)
	if !ok {
		return models.MenuItem{}, connect.NewError(connect.CodeNotFound, fmt.Errorf("menu item %s not found", itemID))
	}
	return item, nil
}

// GetCart returns the cart with a tip preview.
func (s *OrderService) GetCart(ctx context.Context, req *connect.Request[api.GetCartRequest]) (*connect.Response[api.GetCartResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	cart := toAPICart(store)
	tip, err := calculator.Tip(cart.Total, req.Msg.TipPercent)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	withTip, err := calculator.TotalWithTip(cart.Total, req.Msg.TipPercent)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	return connect.NewResponse(&api.GetCartResponse{
		Cart:         cart,
		TipOptions:   slices.Clone(calculator.TipOptions),
		TipPercent:   req.Msg.TipPercent,
		Tip:          calculator.FormatUSD(tip),
		TotalWithTip: calculator.FormatUSD(withTip),
	}), nil
}

// AddToCart appends Quantity copies of a menu item.
func (s *OrderService) AddToCart(ctx context.Context, req *connect.Request[api.AddToCartRequest]) (*connect.Response[api.AddToCartResponse], error) {
	quantity := req.Msg.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("quantity must be positive, got %d", quantity))
	}

	store, userID, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.menuItem(ctx, req.Msg.ItemID, req.Msg.Language)
	if err != nil {
		return nil, err
	}

	store.AddQuantity(item, quantity)
	if s.metrics != nil {
		s.metrics.CartItemsAdded.Add(float64(quantity))
	}
	s.logger.Debug("Added to cart", "user_id", userID, "item_id", item.ID, "quantity", quantity)

	return connect.NewResponse(&api.AddToCartResponse{Cart: toAPICart(store)}), nil
}

// RemoveFromCart removes by position, by item identifier, or by a set of
// offsets. Positions that are no longer valid are ignored.
func (s *OrderService) RemoveFromCart(ctx context.Context, req *connect.Request[api.RemoveFromCartRequest]) (*connect.Response[api.RemoveFromCartResponse], error) {
	selectors := 0
	if req.Msg.Position != nil {
		selectors++
	}
	if req.Msg.ItemID != "" {
		selectors++
	}
	if len(req.Msg.Offsets) > 0 {
		selectors++
	}
	if selectors != 1 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("exactly one of position, item_id or offsets is required"))
	}

	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	removed := 0
	switch {
	case req.Msg.Position != nil:
		if store.RemoveAt(*req.Msg.Position) {
			removed = 1
		}
	case req.Msg.ItemID != "":
		if store.Remove(req.Msg.ItemID) {
			removed = 1
		}
	default:
		removed = store.RemoveAtOffsets(req.Msg.Offsets)
	}

	return connect.NewResponse(&api.RemoveFromCartResponse{
		Cart:    toAPICart(store),
		Removed: removed,
	}), nil
}

// ClearCart empties the cart. History is unaffected.
func (s *OrderService) ClearCart(ctx context.Context, req *connect.Request[api.ClearCartRequest]) (*connect.Response[api.ClearCartResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	store.Clear()
	return connect.NewResponse(&api.ClearCartResponse{Cart: toAPICart(store)}), nil
}

// ToggleFavorite adds or removes a menu item from favorites.
func (s *OrderService) ToggleFavorite(ctx context.Context, req *connect.Request[api.ToggleFavoriteRequest]) (*connect.Response[api.ToggleFavoriteResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.menuItem(ctx, req.Msg.ItemID, req.Msg.Language)
	if err != nil {
		return nil, err
	}

	favorite := store.ToggleFavorite(item)
	return connect.NewResponse(&api.ToggleFavoriteResponse{
		Favorite:  favorite,
		Favorites: toAPIItems(store.Favorites()),
	}), nil
}

// ListFavorites returns favorites in the order they were added.
func (s *OrderService) ListFavorites(ctx context.Context, req *connect.Request[api.ListFavoritesRequest]) (*connect.Response[api.ListFavoritesResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListFavoritesResponse{Items: toAPIItems(store.Favorites())}), nil
}

// RemoveFavorites removes favorites at the given offsets.
func (s *OrderService) RemoveFavorites(ctx context.Context, req *connect.Request[api.RemoveFavoritesRequest]) (*connect.Response[api.RemoveFavoritesResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	removed := store.RemoveFavoritesAt(req.Msg.Offsets)
	return connect.NewResponse(&api.RemoveFavoritesResponse{
		Removed:   removed,
		Favorites: toAPIItems(store.Favorites()),
	}), nil
}

// Checkout finalizes the cart into a history record, persists it, and
// schedules the cart to be cleared.
func (s *OrderService) Checkout(ctx context.Context, req *connect.Request[api.CheckoutRequest]) (*connect.Response[api.CheckoutResponse], error) {
	if !slices.Contains(api.PaymentTypes, req.Msg.PaymentType) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported payment type %q", req.Msg.PaymentType))
	}
	if !slices.Contains(api.PickupTimes, req.Msg.PickupTime) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported pickup time %q", req.Msg.PickupTime))
	}
	if !calculator.ValidTip(req.Msg.TipPercent) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported tip percentage %d", req.Msg.TipPercent))
	}
	loyaltyID := strings.TrimSpace(req.Msg.LoyaltyID)

	store, userID, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := store.Checkout()
	switch {
	case errors.Is(err, order.ErrEmptyCart), errors.Is(err, order.ErrCheckoutPending):
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	case err != nil:
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if s.history != nil {
		if err := s.history.SaveOrder(ctx, userID, &rec); err != nil {
			s.logger.Error("Failed to save order", "order_id", rec.ID, "error", err)
			store.Abort(rec.ID)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	s.logger.Info("Order placed",
		"user_id", userID,
		"order_id", rec.ID,
		"items", len(rec.Items),
		"total", rec.TotalPrice,
	)

	ev := events.NewOrderPlaced(userID, rec)
	ev.TipPercent = req.Msg.TipPercent
	ev.PaymentType = req.Msg.PaymentType
	ev.PickupTime = req.Msg.PickupTime
	ev.LoyaltyID = loyaltyID
	if err := s.publisher.PublishOrderPlaced(ctx, ev); err != nil {
		s.logger.Warn("Failed to publish order event", "order_id", rec.ID, "error", err)
	}

	if s.metrics != nil {
		s.metrics.OrdersFinalized.Inc()
		s.metrics.OrderValue.Observe(float64(rec.TotalPrice))
	}

	s.scheduleClear(store, rec.ID)

	tip, _ := calculator.Tip(rec.TotalPrice, req.Msg.TipPercent)
	withTip, _ := calculator.TotalWithTip(rec.TotalPrice, req.Msg.TipPercent)
	return connect.NewResponse(&api.CheckoutResponse{
		Order:        toAPIRecord(rec),
		PaymentType:  req.Msg.PaymentType,
		PickupTime:   req.Msg.PickupTime,
		LoyaltyID:    loyaltyID,
		Tip:          calculator.FormatUSD(tip),
		TotalWithTip: calculator.FormatUSD(withTip),
	}), nil
}

// scheduleClear completes the checkout of recordID after the clear delay.
// A cart edited in the meantime is left alone.
func (s *OrderService) scheduleClear(store *order.Store, recordID string) {
	if s.clearDelay <= 0 {
		store.CompleteCheckout(recordID)
		return
	}
	time.AfterFunc(s.clearDelay, func() {
		if store.CompleteCheckout(recordID) {
			s.logger.Debug("Checkout completed", "order_id", recordID)
		}
	})
}

// ListHistory returns past orders, newest first.
func (s *OrderService) ListHistory(ctx context.Context, req *connect.Request[api.ListHistoryRequest]) (*connect.Response[api.ListHistoryResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	history := store.History()
	orders := make([]api.OrderRecord, len(history))
	for i, rec := range history {
		orders[i] = toAPIRecord(rec)
	}
	return connect.NewResponse(&api.ListHistoryResponse{Orders: orders}), nil
}

// GetReceipt renders a QR receipt for one of the caller's orders.
func (s *OrderService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	if req.Msg.OrderID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("order_id is required"))
	}
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := store.Record(req.Msg.OrderID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("order %s not found", req.Msg.OrderID))
	}

	png, err := s.receipts.Generate(rec)
	if err != nil {
		s.logger.Error("Failed to render receipt", "order_id", rec.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.GetReceiptResponse{
		PNG:     png,
		Payload: receipt.Payload(rec),
	}), nil
}

// GetProfile returns the diner's name, party size and login state.
func (s *OrderService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetProfileResponse{Profile: toAPIProfile(store)}), nil
}

// SetUserName stores the name verbatim. The empty string unsets it.
func (s *OrderService) SetUserName(ctx context.Context, req *connect.Request[api.SetUserNameRequest]) (*connect.Response[api.SetUserNameResponse], error) {
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	store.SetUserName(req.Msg.UserName)
	return connect.NewResponse(&api.SetUserNameResponse{Profile: toAPIProfile(store)}), nil
}

// SetGuestCount sets the party size.
func (s *OrderService) SetGuestCount(ctx context.Context, req *connect.Request[api.SetGuestCountRequest]) (*connect.Response[api.SetGuestCountResponse], error) {
	if req.Msg.GuestCount < 1 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("guest count must be at least 1, got %d", req.Msg.GuestCount))
	}
	store, _, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	store.SetGuestCount(req.Msg.GuestCount)
	return connect.NewResponse(&api.SetGuestCountResponse{Profile: toAPIProfile(store)}), nil
}
