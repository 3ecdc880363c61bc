package recipients

import "errors"

var (
	// ErrRecipientResolution is returned when role membership cannot be
	// expanded. The event record still exists for audit, but no delivery
	// units are produced.
	ErrRecipientResolution = errors.New("recipients: role membership lookup failed")
)
