package probe

import "github.com/DIMO-Network/webhook-validator/internal/services/notification"

// ProbeRequest is the form submitted by the operator.
type ProbeRequest struct {
	// AccountID is the platform account (CPN) the notification is sent for.
	AccountID string `json:"cpn" form:"cpn"`
	// Topic is the notification category, "document" or "stock".
	Topic string `json:"topic" form:"topic"`
	// URL is the webhook endpoint to probe.
	URL string `json:"url" form:"url"`
}

// ProbeResponse carries the verdict of a probe. It is always returned with status 200.
type ProbeResponse struct {
	// Verdict is the category of the outcome.
	Verdict string `json:"verdict"`
	// Failure is true when the target could not be reached, timed out, returned a non-2xx
	// status or the input was rejected.
	Failure bool `json:"failure"`
	// Message is the human-readable verdict shown to the operator.
	Message string `json:"message"`
	// ProbeID identifies the probe in logs and in the X-Probe-Id header sent to the target.
	ProbeID string `json:"probeId"`
	// ElapsedSeconds is how long the target took, when a request was sent.
	ElapsedSeconds *float64 `json:"elapsedSeconds,omitempty"`
	// Status is the HTTP status returned by the target.
	Status int `json:"status,omitempty"`
	// ContentType is the content type returned by the target.
	ContentType string `json:"contentType,omitempty"`
	// BodyLength is the number of response bytes read.
	BodyLength *int `json:"bodyLength,omitempty"`
	// BodyTruncated is set when the response was larger than the read limit.
	BodyTruncated bool `json:"bodyTruncated,omitempty"`
	// Payload is the notification that was sent.
	Payload *notification.Payload `json:"payload,omitempty"`
}
