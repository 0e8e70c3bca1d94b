package constants

const Version = "1.0.0"

// App Name and usage. Edit them here to prevent breaking tests
const Name = "mfd"
const Usage = "Medical Fraud Detection API CLI"

const ContentTypeJSON = "application/json; charset=utf-8"

// DefaultListLimit is the page size used when the caller does not supply
// one; MaxListLimit is the ceiling above which a request is rejected rather
// than clamped.
const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)
