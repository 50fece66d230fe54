package classifier

import (
	"strings"
	"time"
)

// AckRule is an extra operator supplied rule that marks a response as an acknowledgement.
type AckRule interface {
	Match(statusCode int, contentType string, body string) (bool, error)
}

// Policy holds the tuning knobs of the heuristic. None of the values are authoritative;
// they are best-effort defaults observed to work for common receivers.
type Policy struct {
	// Timeout is the ceiling a response must arrive within.
	Timeout time.Duration
	// WebpageMinBytes is the size a body must exceed before page markers count.
	WebpageMinBytes int
	// SmallBodyMaxBytes is the size under which any body is accepted as an acknowledgement.
	SmallBodyMaxBytes int
	// WebpageMarkers are substrings that identify an HTML document.
	WebpageMarkers []string
	// PageBuilderSignatures are substrings found in generator tags or asset URLs of hosted site builders.
	PageBuilderSignatures []string
	// AckTokens are words commonly returned by webhook receivers.
	AckTokens []string
	// AckRule is optional.
	AckRule AckRule
}

const (
	DefaultTimeout           = 3 * time.Second
	DefaultWebpageMinBytes   = 512
	DefaultSmallBodyMaxBytes = 2000
)

// DefaultWebpageMarkers returns the built-in HTML markers.
func DefaultWebpageMarkers() []string {
	return []string{"<!doctype html", "<html", "<head", "<body"}
}

// DefaultPageBuilderSignatures returns the built-in site builder signatures.
func DefaultPageBuilderSignatures() []string {
	return []string{"wordpress", "wp-content", "wix.com", "squarespace", "webflow", "shopify", "godaddy", "jimdo", "weebly", "bsale.cl/themes"}
}

// DefaultAckTokens returns the built-in acknowledgement words.
func DefaultAckTokens() []string {
	return []string{"ok", "success", "ack", "acknowledged", "processing", "received", "accepted", "done"}
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:               DefaultTimeout,
		WebpageMinBytes:       DefaultWebpageMinBytes,
		SmallBodyMaxBytes:     DefaultSmallBodyMaxBytes,
		WebpageMarkers:        DefaultWebpageMarkers(),
		PageBuilderSignatures: DefaultPageBuilderSignatures(),
		AckTokens:             DefaultAckTokens(),
	}
}

// WithDefaults returns a copy of p with zero values replaced by defaults.
func (p Policy) WithDefaults() Policy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.WebpageMinBytes <= 0 {
		p.WebpageMinBytes = DefaultWebpageMinBytes
	}
	if p.SmallBodyMaxBytes <= 0 {
		p.SmallBodyMaxBytes = DefaultSmallBodyMaxBytes
	}
	p.WebpageMarkers = normalizeList(p.WebpageMarkers, DefaultWebpageMarkers())
	p.PageBuilderSignatures = normalizeList(p.PageBuilderSignatures, DefaultPageBuilderSignatures())
	p.AckTokens = normalizeList(p.AckTokens, DefaultAckTokens())
	return p
}

func normalizeList(values []string, fallback []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
