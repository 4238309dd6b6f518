package model

// Principal is the verified external identity attached to a request.
// Verification itself happens upstream; we only consume the claims.
type Principal struct {
	Subject string
	Email   string
	Name    string
}
