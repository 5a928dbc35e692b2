package zendesk

// ResetPolicy decides when a temporary identity override ends.
type ResetPolicy int

const (
	// ResetAfterNextCall ends the override once the next call completes, successfully or not.
	ResetAfterNextCall ResetPolicy = iota
	// ResetManual keeps the override until ResetIdentity is called.
	ResetManual
)

// String returns the policy name.
func (p ResetPolicy) String() string {
	if p == ResetManual {
		return "manual"
	}

	return "after-next-call"
}

// IdentityState is the override state of a client.
type IdentityState int

const (
	// IdentityNormal authenticates as the primary user.
	IdentityNormal IdentityState = iota
	// IdentityTemporaryUser authenticates as an override username.
	IdentityTemporaryUser
	// IdentityTemporaryAnonymous sends no Authorization header.
	IdentityTemporaryAnonymous
)

// String returns the state name.
func (s IdentityState) String() string {
	switch s {
	case IdentityTemporaryUser:
		return "temporary-identity"
	case IdentityTemporaryAnonymous:
		return "temporary-anonymous"
	default:
		return "normal"
	}
}
