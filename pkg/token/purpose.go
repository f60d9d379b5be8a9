package token

// Purpose declares what a token may be used for.
type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeLogin  Purpose = "login"
)

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeVerify, PurposeLogin:
		return true
	default:
		return false
	}
}

func (p Purpose) String() string {
	return string(p)
}
