package contextkeys

// Custom type avoids collisions with other packages' keys.
type contextKey string

const (
	// PrincipalKey stores the authenticated *auth.Principal in the gin context.
	PrincipalKey = contextKey("principal")
)

// GinPrincipalKey is PrincipalKey as a gin context key. gin.Context.Set only
// accepts string keys.
const GinPrincipalKey = string(PrincipalKey)
