package api

// Service names.
const (
	MenuServiceName       = "idine.v1.MenuService"
	OrderServiceName      = "idine.v1.OrderService"
	PreferenceServiceName = "idine.v1.PreferenceService"
	AuthServiceName       = "idine.v1.AuthService"
)

// Procedure paths, as routed by the server and called by Client.
const (
	MenuServiceGetMenuProcedure            = "/" + MenuServiceName + "/GetMenu"
	MenuServiceGetItemProcedure            = "/" + MenuServiceName + "/GetItem"
	MenuServiceSearchProcedure             = "/" + MenuServiceName + "/Search"
	MenuServiceGetRecommendationsProcedure = "/" + MenuServiceName + "/GetRecommendations"

	OrderServiceGetCartProcedure         = "/" + OrderServiceName + "/GetCart"
	OrderServiceAddToCartProcedure       = "/" + OrderServiceName + "/AddToCart"
	OrderServiceRemoveFromCartProcedure  = "/" + OrderServiceName + "/RemoveFromCart"
	OrderServiceClearCartProcedure       = "/" + OrderServiceName + "/ClearCart"
	OrderServiceToggleFavoriteProcedure  = "/" + OrderServiceName + "/ToggleFavorite"
	OrderServiceListFavoritesProcedure   = "/" + OrderServiceName + "/ListFavorites"
	OrderServiceRemoveFavoritesProcedure = "/" + OrderServiceName + "/RemoveFavorites"
	OrderServiceCheckoutProcedure        = "/" + OrderServiceName + "/Checkout"
	OrderServiceListHistoryProcedure     = "/" + OrderServiceName + "/ListHistory"
	OrderServiceGetReceiptProcedure      = "/" + OrderServiceName + "/GetReceipt"
	OrderServiceGetProfileProcedure      = "/" + OrderServiceName + "/GetProfile"
	OrderServiceSetUserNameProcedure     = "/" + OrderServiceName + "/SetUserName"
	OrderServiceSetGuestCountProcedure   = "/" + OrderServiceName + "/SetGuestCount"

	PreferenceServiceGetLanguageProcedure = "/" + PreferenceServiceName + "/GetLanguage"
	PreferenceServiceSetLanguageProcedure = "/" + PreferenceServiceName + "/SetLanguage"

	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"
	AuthServiceLogoutProcedure   = "/" + AuthServiceName + "/Logout"
)

// Payment types accepted at checkout.
const (
	PaymentCash       = "Cash"
	PaymentCredit     = "Credit Card"
	PaymentDebit      = "Debit Card"
	PaymentIDinePoint = "iDine Points"
)

// PaymentTypes lists the payment types in display order.
var PaymentTypes = []string{PaymentCash, PaymentCredit, PaymentDebit, PaymentIDinePoint}

// Pickup times accepted at checkout.
const (
	PickupNow             = "Now"
	PickupTonight         = "Tonight"
	PickupTomorrowMorning = "Tomorrow Morning"
)

// PickupTimes lists the pickup times in display order.
var PickupTimes = []string{PickupNow, PickupTonight, PickupTomorrowMorning}
