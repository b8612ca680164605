package auth

// TokenSource supplies the bearer token attached to every order service request.
type TokenSource interface {
	Token() (string, error)
}
