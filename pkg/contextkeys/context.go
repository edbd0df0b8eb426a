package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

// ActorContextKey stores the resolved *auth.Actor of the request.
const ActorContextKey = contextKey("actor")
