package giterror

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"
)

// Inspector provides methods for analyzing errors returned while calling the GitHub API.
type Inspector interface {
	// IsNetworkError returns true if the request never produced a response.
	IsNetworkError(err error) bool

	// IsTimeout returns true if the request was abandoned because a deadline passed.
	IsTimeout(err error) bool

	// IsMalformedPayload returns true if a response body could not be decoded as JSON.
	IsMalformedPayload(err error) bool
}

// GitHubErrorInspector implements the Inspector interface. Typed errors in
// the chain are checked first; message matching is the fallback for
// errors that arrive already flattened to strings.
type GitHubErrorInspector struct{}

// NewInspector creates a new GitHubErrorInspector.
func NewInspector() Inspector {
	return &GitHubErrorInspector{}
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *GitHubErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsTimeout checks if the error was caused by an exceeded deadline.
func (i *GitHubErrorInspector) IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// IsMalformedPayload checks if the error came from decoding a response body.
func (i *GitHubErrorInspector) IsMalformedPayload(err error) bool {
	if err == nil {
		return false
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected end of json input")
}
