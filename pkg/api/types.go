// Package api defines the iDine RPC messages and a typed Connect client.
//
// Messages are plain Go structs carried as JSON; see Codec.
package api

// Ingredient is a named ingredient with an emoji icon.
type Ingredient struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// MenuItem is a dish as shown to clients, with its derived image keys.
type MenuItem struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	EnglishName    string       `json:"englishName,omitempty"`
	PhotoCredit    string       `json:"photoCredit"`
	Price          int          `json:"price"`
	Restrictions   []string     `json:"restrictions"`
	Description    string       `json:"description"`
	Calories       int          `json:"calories"`
	AttributeTitle string       `json:"attributeTitle,omitempty"`
	Ingredients    []Ingredient `json:"ingredients,omitempty"`
	MainImage      string       `json:"mainImage"`
	ThumbnailImage string       `json:"thumbnailImage"`
}

// MenuSection is a named group of dishes.
type MenuSection struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// OrderRecord is a finalized order.
type OrderRecord struct {
	ID         string     `json:"id"`
	CreatedAt  int64      `json:"createdAt"`
	Items      []MenuItem `json:"items"`
	TotalPrice int        `json:"totalPrice"`
}

// Cart is the live order.
type Cart struct {
	Items []MenuItem `json:"items"`
	Count int        `json:"count"`
	Total int        `json:"total"`
	// Phase is "cart", "finalized" or "cleared".
	Phase string `json:"phase"`
}

// User is a registered diner.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Profile is the diner's session state.
type Profile struct {
	// UserName is stored verbatim and may be empty.
	UserName string `json:"userName"`
	// DisplayName is UserName, or "Guest" when UserName is empty.
	DisplayName string `json:"displayName"`
	GuestCount  int    `json:"guestCount"`
	LoggedIn    bool   `json:"loggedIn"`
}

// MenuService messages.

type GetMenuRequest struct {
	// Language is "en" or "zh". Empty uses the caller's saved preference.
	Language string `json:"language,omitempty"`
	// Category filters sections by name; empty or "All" returns every section.
	Category string `json:"category,omitempty"`
}

type GetMenuResponse struct {
	Language   string        `json:"language"`
	Categories []string      `json:"categories"`
	Sections   []MenuSection `json:"sections"`
}

type GetItemRequest struct {
	ItemID   string `json:"itemId"`
	Language string `json:"language,omitempty"`
}

type GetItemResponse struct {
	Item MenuItem `json:"item"`
}

type SearchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

type SearchResponse struct {
	Items []MenuItem `json:"items"`
}

type GetRecommendationsRequest struct {
	Language string `json:"language,omitempty"`
}

type GetRecommendationsResponse struct {
	Items []MenuItem `json:"items"`
}

// OrderService messages.

type GetCartRequest struct {
	// TipPercent is used for the tip preview; one of TipOptions.
	TipPercent int `json:"tipPercent"`
}

type GetCartResponse struct {
	Cart         Cart   `json:"cart"`
	TipOptions   []int  `json:"tipOptions"`
	TipPercent   int    `json:"tipPercent"`
	Tip          string `json:"tip"`
	TotalWithTip string `json:"totalWithTip"`
}

type AddToCartRequest struct {
	ItemID string `json:"itemId"`
	// Quantity defaults to 1 when zero.
	Quantity int    `json:"quantity,omitempty"`
	Language string `json:"language,omitempty"`
}

type AddToCartResponse struct {
	Cart Cart `json:"cart"`
}

// RemoveFromCartRequest removes by exactly one of Position, ItemID or Offsets.
type RemoveFromCartRequest struct {
	Position *int   `json:"position,omitempty"`
	ItemID   string `json:"itemId,omitempty"`
	Offsets  []int  `json:"offsets,omitempty"`
}

type RemoveFromCartResponse struct {
	Cart    Cart `json:"cart"`
	Removed int  `json:"removed"`
}

type ClearCartRequest struct{}

type ClearCartResponse struct {
	Cart Cart `json:"cart"`
}

type ToggleFavoriteRequest struct {
	ItemID   string `json:"itemId"`
	Language string `json:"language,omitempty"`
}

type ToggleFavoriteResponse struct {
	Favorite  bool       `json:"favorite"`
	Favorites []MenuItem `json:"favorites"`
}

type ListFavoritesRequest struct{}

type ListFavoritesResponse struct {
	Items []MenuItem `json:"items"`
}

type RemoveFavoritesRequest struct {
	Offsets []int `json:"offsets"`
}

type RemoveFavoritesResponse struct {
	Removed   int        `json:"removed"`
	Favorites []MenuItem `json:"favorites"`
}

type CheckoutRequest struct {
	PaymentType string `json:"paymentType"`
	TipPercent  int    `json:"tipPercent"`
	PickupTime  string `json:"pickupTime"`
	// LoyaltyID is the optional iDine loyalty card ID.
	LoyaltyID string `json:"loyaltyId,omitempty"`
}

type CheckoutResponse struct {
	Order        OrderRecord `json:"order"`
	PaymentType  string      `json:"paymentType"`
	PickupTime   string      `json:"pickupTime"`
	LoyaltyID    string      `json:"loyaltyId,omitempty"`
	Tip          string      `json:"tip"`
	TotalWithTip string      `json:"totalWithTip"`
}

type ListHistoryRequest struct{}

type ListHistoryResponse struct {
	Orders []OrderRecord `json:"orders"`
}

type GetReceiptRequest struct {
	OrderID string `json:"orderId"`
}

type GetReceiptResponse struct {
	// PNG is the QR code image; encoded as base64 in JSON.
	PNG     []byte `json:"png"`
	Payload string `json:"payload"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type SetUserNameRequest struct {
	UserName string `json:"userName"`
}

type SetUserNameResponse struct {
	Profile Profile `json:"profile"`
}

type SetGuestCountRequest struct {
	GuestCount int `json:"guestCount"`
}

type SetGuestCountResponse struct {
	Profile Profile `json:"profile"`
}

// PreferenceService messages.

type GetLanguageRequest struct{}

type GetLanguageResponse struct {
	Language string `json:"language"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

type SetLanguageResponse struct {
	Language string `json:"language"`
}

// AuthService messages.

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}
