package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *MenuError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *MenuError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ProviderQuery creates a provider query failure error
func ProviderQuery(provider string, err error) *MenuError {
	return Wrap(err, ErrCodeProviderQuery,
		fmt.Sprintf("code action request to '%s' failed", provider)).
		WithDetail("provider", provider)
}

// ResolveFailed creates a resolve round-trip failure error. Code and
// message come from the provider's error payload.
func ResolveFailed(provider string, code int64, message string) *MenuError {
	return New(ErrCodeResolveFailed,
		fmt.Sprintf("failed to resolve code action: %s (code %d)", message, code)).
		WithDetail("provider", provider).
		WithDetail("responseCode", code)
}

// ApplyFailed creates an edit application failure error
func ApplyFailed(title string, err error) *MenuError {
	return Wrap(err, ErrCodeApplyFailed,
		fmt.Sprintf("failed to apply workspace edit for '%s'", title)).
		WithDetail("action", title)
}

// SessionActive creates an error for an invocation that overlaps a live
// selection session
func SessionActive() *MenuError {
	return New(ErrCodeSessionActive, "a code action menu is already open")
}

// SurfaceCreate creates a surface creation failure error
func SurfaceCreate(kind string, err error) *MenuError {
	return Wrap(err, ErrCodeSurfaceCreate,
		fmt.Sprintf("failed to create %s surface", kind)).
		WithDetail("surface", kind)
}

// HostUnavailable creates an editor host connection failure error
func HostUnavailable(err error) *MenuError {
	return Wrap(err, ErrCodeHostUnavailable, "editor host is not reachable")
}
