package constants

const (
	APP_STOREFRONT           = "storefront"
	APP_CART_SERVICE         = "cart-service"
	APP_CART_WORKER          = "cart-worker"
	APP_ORDER_SERVICE        = "order-service"
	APP_PRODUCT_SERVICE      = "product-service"
	APP_NOTIFICATION_SERVICE = "notification-service"
	APP_MAIN_STOREFRONT      = "main storefront"
	APP_USER_SERVICE         = "user-service"
	AUDIENCE_USER            = "audience-user"
	ROLE_ADMIN               = "admin"
)
