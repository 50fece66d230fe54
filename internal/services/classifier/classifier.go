// Package classifier turns the outcome of a webhook probe into a verdict.
//
// The rules are a best-effort heuristic over status code, content type and body. They
// describe how a typical webhook receiver behaves and are not a correctness guarantee.
package classifier

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Verdict is the category a probe falls into.
type Verdict string

const (
	VerdictOK           Verdict = "ok"
	VerdictTimeout      Verdict = "timeout"
	VerdictUnreachable  Verdict = "unreachable"
	VerdictHTTPError    Verdict = "http-error"
	VerdictWebpage      Verdict = "looks-like-webpage"
	VerdictUnrecognized Verdict = "unrecognized"
	VerdictInvalidInput Verdict = "invalid-input"
)

// IsFailure reports whether the verdict is a hard failure rather than an advisory one.
func (v Verdict) IsFailure() bool {
	switch v {
	case VerdictTimeout, VerdictUnreachable, VerdictHTTPError, VerdictInvalidInput:
		return true
	default:
		return false
	}
}

// Result is the verdict plus the message shown to the operator.
type Result struct {
	Verdict Verdict
	Message string
	// Responded is false when no HTTP response was received.
	Responded   bool
	ErrKind     ErrorKind
	Elapsed     time.Duration
	StatusCode  int
	ContentType string
	BodyLength  int
	// BodyTruncated is set when only the first BodyLength bytes of the body were read.
	BodyTruncated bool
}

// InvalidInput builds the result for a request rejected before any outbound call.
func InvalidInput(reason string) Result {
	return Result{
		Verdict: VerdictInvalidInput,
		Message: "Invalid input: " + reason,
	}
}

// Classify applies the policy to an exchange. The first matching rule wins:
// unreachable, timeout, http-error, looks-like-webpage, ok, unrecognized.
func Classify(p Policy, ex *Exchange) Result {
	p = p.WithDefaults()
	res := Result{Elapsed: ex.Elapsed, ErrKind: ex.ErrKind}
	secs := ex.Elapsed.Seconds()

	switch ex.ErrKind {
	case ErrorKindNone:
	case ErrorKindDNS:
		res.Verdict = VerdictUnreachable
		res.Message = fmt.Sprintf("The URL is not valid or does not exist (%.2fs)", secs)
		return res
	case ErrorKindRefused:
		res.Verdict = VerdictUnreachable
		res.Message = fmt.Sprintf("Could not connect to the webhook: connection refused (%.2fs)", secs)
		return res
	case ErrorKindTLS:
		res.Verdict = VerdictUnreachable
		res.Message = fmt.Sprintf("Could not establish a secure connection with the webhook: %s (%.2fs)", detailOr(ex, "TLS handshake failed"), secs)
		return res
	case ErrorKindTimeout:
		res.Verdict = VerdictTimeout
		res.Message = fmt.Sprintf("The webhook did not respond within the allowed time (timeout after %.2fs)", secs)
		return res
	default:
		res.Verdict = VerdictUnreachable
		res.Message = fmt.Sprintf("Could not connect to the webhook: %s (%.2fs)", detailOr(ex, "connection failed"), secs)
		return res
	}

	res.Responded = true
	res.StatusCode = ex.StatusCode
	res.ContentType = ex.ContentType
	res.BodyLength = len(ex.Body)
	res.BodyTruncated = ex.Truncated

	if ex.Elapsed > p.Timeout {
		res.Verdict = VerdictTimeout
		res.Message = fmt.Sprintf("The webhook exceeded the maximum allowed time of %.2fs (%.2fs)", p.Timeout.Seconds(), secs)
		return res
	}

	if ex.StatusCode < http.StatusOK || ex.StatusCode >= http.StatusMultipleChoices {
		res.Verdict = VerdictHTTPError
		if ex.StatusCode == http.StatusMethodNotAllowed {
			res.Message = fmt.Sprintf("The webhook responded 405 Method Not Allowed, it must accept POST requests (%.2fs)", secs)
		} else {
			res.Message = fmt.Sprintf("The webhook responded with status %d, it must be 2xx (%.2fs)", ex.StatusCode, secs)
		}
		return res
	}

	contentType := ex.normalizedContentType()
	body := ex.normalizedBody()

	if looksLikeWebpage(p, contentType, body) {
		res.Verdict = VerdictWebpage
		res.Message = fmt.Sprintf("The URL responded %d, but it looks like a web page (Content-Type: %s) (%.2fs)", ex.StatusCode, displayContentType(contentType), secs)
		return withTruncationNote(res)
	}

	if isAcknowledgement(p, ex, contentType, body) {
		res.Verdict = VerdictOK
		res.Message = fmt.Sprintf("The webhook responded correctly (%d) in %.2fs", ex.StatusCode, secs)
		return withTruncationNote(res)
	}

	res.Verdict = VerdictUnrecognized
	res.Message = fmt.Sprintf("The URL responded %d, but the content does not look like a typical webhook response (Content-Type: %s) (%.2fs)", ex.StatusCode, displayContentType(contentType), secs)
	return withTruncationNote(res)
}

// withTruncationNote tells the operator that the body was only partially read.
func withTruncationNote(res Result) Result {
	if res.BodyTruncated {
		res.Message += fmt.Sprintf(" [response body truncated after %d bytes]", res.BodyLength)
	}
	return res
}

func looksLikeWebpage(p Policy, contentType, body string) bool {
	if len(body) <= p.WebpageMinBytes {
		return false
	}
	if strings.Contains(contentType, "text/html") {
		return true
	}
	for _, marker := range p.WebpageMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return hasPageBuilderSignature(body, p.PageBuilderSignatures)
}

// hasPageBuilderSignature looks for site builder names in generator tags and asset URLs.
func hasPageBuilderSignature(body string, signatures []string) bool {
	if !strings.Contains(body, "<") {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(body)))
	if err != nil {
		return false
	}
	found := false
	doc.Find(`meta[name="generator"], script[src], link[href]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		attrs := s.AttrOr("content", "") + " " + s.AttrOr("src", "") + " " + s.AttrOr("href", "")
		for _, sig := range signatures {
			if strings.Contains(attrs, sig) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func isAcknowledgement(p Policy, ex *Exchange, contentType, body string) bool {
	if body == "" {
		return true
	}
	if isStructuredContentType(contentType) {
		return true
	}
	if len(body) < p.SmallBodyMaxBytes {
		return true
	}
	if containsAckToken(body, p.AckTokens) {
		return true
	}
	if p.AckRule != nil {
		ok, err := p.AckRule.Match(ex.StatusCode, contentType, strings.TrimSpace(string(ex.Body)))
		return err == nil && ok
	}
	return false
}

// isStructuredContentType accepts JSON and XML media types, including +json and +xml suffixes.
func isStructuredContentType(contentType string) bool {
	return strings.Contains(contentType, "json") || strings.Contains(contentType, "xml")
}

// containsAckToken matches single word tokens against whole words of the body and
// anything else as a plain substring.
func containsAckToken(body string, tokens []string) bool {
	isSep := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(body, isSep) {
		words[w] = struct{}{}
	}
	for _, token := range tokens {
		if strings.IndexFunc(token, isSep) >= 0 {
			if strings.Contains(body, token) {
				return true
			}
			continue
		}
		if _, ok := words[token]; ok {
			return true
		}
	}
	return false
}

func detailOr(ex *Exchange, fallback string) string {
	if ex.ErrDetail == "" {
		return fallback
	}
	return ex.ErrDetail
}

func displayContentType(contentType string) string {
	if contentType == "" {
		return "none"
	}
	return contentType
}
