package constants

const (
	KEY_APP_NAME           = "app"
	KEY_BODY               = "body"
	KEY_CACHE_KEY          = "cacheKey"
	KEY_CART               = "cart"
	KEY_CART_ITEMS         = "cartItems"
	KEY_CART_ITEMS_COUNT   = "cartItemsCount"
	KEY_CART_SESSION_ID    = "cartSessionId"
	KEY_CONFIG             = "config"
	KEY_DB_URL             = "dbUrl"
	KEY_DURATION           = "duration"
	KEY_EVENT              = "event"
	KEY_HEADER             = "header"
	KEY_LANGUAGE           = "language"
	KEY_ORDER              = "order"
	KEY_ORDERS             = "orders"
	KEY_ORDER_ID           = "orderId"
	KEY_ORDER_ITEMS        = "orderItems"
	KEY_ORDER_STATUS       = "orderStatus"
	KEY_PATH_VALUES        = "pathValues"
	KEY_PAYMENT_REFERENCE  = "paymentReference"
	KEY_PROCESS            = "process"
	KEY_PRODUCT            = "product"
	KEY_PRODUCT_ID         = "productId"
	KEY_PRODUCT_QUANTITY   = "productQuantity"
	KEY_REQUEST            = "request"
	KEY_REQUEST_HOST       = "host"
	KEY_REQUEST_ID         = "requestId"
	KEY_REQUEST_IP         = "requesterIP"
	KEY_REQUEST_METHOD     = "requestMethod"
	KEY_REQUEST_URI        = "requestURI"
	KEY_REQUEST_URL        = "requestURL"
	KEY_REQUESTED_STATUS   = "requestedStatus"
	KEY_RESPONSE_BYTES     = "responseBytes"
	KEY_RESPONSE_STATUS    = "responseStatus"
	KEY_SPAN_ID            = "spanId"
	KEY_TAG                = "tag"
	KEY_TOKEN              = "token"
	KEY_TOTALS             = "totals"
	KEY_TRACE_ID           = "traceId"
	KEY_USER_ID            = "userId"
)

const (
	CHANNEL_ORDER_EVENTS = "storefront.order-events"
	CACHE_KEY_ORDER      = "order:%s"
	CACHE_KEY_PRODUCT    = "product:%s"
)
