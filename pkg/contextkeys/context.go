package contextkeys

// ContextKey is the type for context value keys shared across packages.
type ContextKey string

const (
	// DBContextKey carries a *gorm.DB handle (pool or open transaction)
	// through the request context, mainly so tests can pin requests to a
	// rollback-able transaction.
	DBContextKey ContextKey = "db_handle"
)
