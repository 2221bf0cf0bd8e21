package domain

// SubjectType identifies the kind of principal a token was issued for.
// Only end-users exist today; the type is kept in the claims so that adding
// machine principals later does not change the token shape.
type SubjectType string

const (
	SubjectTypeUser SubjectType = "USER"
)
