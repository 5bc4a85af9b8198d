package domain

// Purpose says what an emailed link is allowed to do. It travels inside the
// authenticated ciphertext, so a reset link can never be replayed as an
// activation link or vice versa.
type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

func (p Purpose) Valid() bool {
	return p == PurposeVerify || p == PurposeReset
}
