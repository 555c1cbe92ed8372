package genai

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Kind names the failure class of a hosted-model call. The classes need
// different remediation: a firewall block, a TLS-inspecting proxy and an
// expired API key are fixed by different people, and a generic message
// is not actionable for a help desk.
type Kind string

const (
	KindConnectivity Kind = "connectivity"
	KindTimeout      Kind = "timeout"
	KindTLS          Kind = "tls"
	KindAuth         Kind = "auth"
	KindRateLimit    Kind = "rate_limit"
	KindServer       Kind = "server"
	KindUnknown      Kind = "unknown"
)

// APIError is a classified hosted-model call failure. The message keeps
// the raw underlying error so nothing is lost by classification.
type APIError struct {
	Kind       Kind
	Op         string // "transcribe" or "extract"
	Host       string
	StatusCode int // 0 for transport-level failures
	Message    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s", e.Op, e.Kind, guidance(e.Kind, e.Host))
	fmt.Fprintf(&b, "\nhost: %s", e.Host)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "\nstatus: %d", e.StatusCode)
	}
	fmt.Fprintf(&b, "\ncause: %s", e.Message)
	return b.String()
}

func guidance(k Kind, host string) string {
	switch k {
	case KindConnectivity:
		return fmt.Sprintf("could not reach the model endpoint; a firewall or network policy may be blocking %s", host)
	case KindTimeout:
		return "the request exceeded its deadline; check network latency or proxy configuration"
	case KindTLS:
		return "certificate verification failed; a corporate TLS-inspecting proxy may be intercepting traffic"
	case KindAuth:
		return "the API credential was rejected; check that the API key is set and still valid"
	case KindRateLimit:
		return "the model endpoint is rate limiting; back off and retry later"
	case KindServer:
		return "the model provider returned a server-side error; not fixable on this side"
	default:
		return "the call failed for an unrecognized reason"
	}
}

// classifyTransport maps a transport-level error (no HTTP response) onto
// the taxonomy.
func classifyTransport(op, host string, err error) *APIError {
	e := &APIError{Kind: KindUnknown, Op: op, Host: host, Message: err.Error()}

	var (
		certErr    *tls.CertificateVerificationError
		unkAuth    x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		dnsErr     *net.DNSError
		netErr     net.Error
	)
	switch {
	case errors.As(err, &certErr), errors.As(err, &unkAuth),
		errors.As(err, &hostErr), errors.As(err, &invalidErr):
		e.Kind = KindTLS
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		e.Kind = KindTimeout
	case errors.As(err, &dnsErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH):
		e.Kind = KindConnectivity
	}
	return e
}

// classifyStatus maps a non-2xx HTTP response onto the taxonomy. The raw
// body is preserved in the message.
func classifyStatus(op, host string, status int, body string) *APIError {
	e := &APIError{Kind: KindUnknown, Op: op, Host: host, StatusCode: status, Message: body}
	lower := strings.ToLower(body)
	switch {
	case status == 401 || status == 403 || strings.Contains(lower, "api key"):
		e.Kind = KindAuth
	case status == 429 || strings.Contains(lower, "quota") || strings.Contains(lower, "resource_exhausted"):
		e.Kind = KindRateLimit
	case status >= 500:
		e.Kind = KindServer
	}
	return e
}
