package webhooksender

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"syscall"

	"github.com/DIMO-Network/webhook-validator/internal/services/classifier"
)

// transportErrorKind maps a client error to the kind the classifier understands.
func transportErrorKind(err error) (classifier.ErrorKind, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return classifier.ErrorKindTimeout, "deadline exceeded"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return classifier.ErrorKindTimeout, "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return classifier.ErrorKindDNS, dnsErr.Error()
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return classifier.ErrorKindRefused, "connection refused"
	}
	if isTLSError(err) {
		return classifier.ErrorKindTLS, innermost(err).Error()
	}
	if errors.Is(err, context.Canceled) {
		return classifier.ErrorKindNetwork, "request canceled"
	}
	return classifier.ErrorKindNetwork, innermost(err).Error()
}

func isTLSError(err error) bool {
	var (
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

// innermost strips the url.Error wrapper so messages don't repeat the method and URL.
func innermost(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
