package domain

// TokenVerifier verifies a token issued by the identity provider and returns the subject.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
