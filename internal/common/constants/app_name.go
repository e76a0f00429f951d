package constants

const (
	AppMainStorefront    = "isa-crochet-shop"
	AppStorefrontService = "storefront-service"

	AudienceAuthenticated = "authenticated"

	OrderStatusPendingPayment = "pending_payment"
)
