package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyRequestID     = "requestId"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
	KeyConfig        = "config"
	KeyRequest       = "request"
	KeyHeader        = "header"
	KeyBody          = "body"
	KeyRequestHost   = "host"
	KeyRequestIP     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeySessionID     = "sessionId"
	KeyUserID        = "userId"
	KeyEmail         = "email"
	KeyProductID     = "productId"
	KeyVariation     = "variation"
	KeyQuantity      = "quantity"
	KeyOrderID       = "orderId"
	KeyTotalItems    = "totalItems"
	KeyTotalPrice    = "totalPrice"
	KeyCacheKey      = "cacheKey"
	KeyCheckoutState = "checkoutState"
)
