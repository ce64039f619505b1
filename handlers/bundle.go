package handlers

// HandlerBundle groups the handler sets routes are registered from.
type HandlerBundle struct {
	Auth    *AuthHandler
	Admin   *AdminHandler
	Catalog *CatalogHandler
	Orders  *OrderHandler
}
