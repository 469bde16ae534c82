package domain

// AuthMethod identifies where bearer tokens come from.
type AuthMethod string

const (
	// AuthMethodGcloud mints user tokens with `gcloud auth print-access-token`.
	AuthMethodGcloud AuthMethod = "gcloud"

	// AuthMethodADC uses Application Default Credentials (usually a service account).
	AuthMethodADC AuthMethod = "adc"
)

// String returns the string representation.
func (m AuthMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m AuthMethod) Description() string {
	switch m {
	case AuthMethodGcloud:
		return "gcloud user credentials"
	case AuthMethodADC:
		return "application default credentials"
	default:
		return "unknown"
	}
}

// CloudPlatformScope is the OAuth scope requested for ADC tokens.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
