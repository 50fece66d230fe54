// Package notification builds the synthetic platform notifications sent by a probe.
package notification

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Topic is the notification category a probe simulates.
type Topic string

const (
	TopicDocument Topic = "document"
	TopicStock    Topic = "stock"

	officeID   = "1"
	actionPut  = "put"
	resourceID = "0"
)

// ErrInvalidTopic is returned for topics outside the supported set.
var ErrInvalidTopic = errors.New("invalid topic")

// ErrInvalidAccountID is returned when the account id is not a positive integer.
var ErrInvalidAccountID = errors.New("invalid account id")

// ParseTopic validates a raw topic value.
func ParseTopic(raw string) (Topic, error) {
	switch t := Topic(strings.TrimSpace(strings.ToLower(raw))); t {
	case TopicDocument, TopicStock:
		return t, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidTopic, raw)
	}
}

// ValidateAccountID checks that the account id is integer-like and positive.
func ValidateAccountID(accountID string) error {
	n, err := strconv.ParseUint(strings.TrimSpace(accountID), 10, 64)
	if err != nil || n == 0 {
		return fmt.Errorf("%w: '%s'", ErrInvalidAccountID, accountID)
	}
	return nil
}

// ResourcePath returns the resource the notification points to for a topic.
func (t Topic) ResourcePath() string {
	if t == TopicStock {
		return "/v2/stocks.json?variant=0&office=" + officeID
	}
	return "/documents/0.json"
}

// Payload is the notification body a receiver gets.
type Payload struct {
	Request Notification `json:"rq"`
}

// Notification carries the fields of a single platform notification.
type Notification struct {
	AccountID  string `json:"cpnId"`
	Resource   string `json:"resource"`
	ResourceID string `json:"resourceId"`
	Topic      Topic  `json:"topic"`
	Action     string `json:"action"`
	OfficeID   string `json:"officeId"`
	SentAt     int64  `json:"send"`
}

// Builder creates notification payloads.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a Builder stamping payloads with the current time.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build returns the payload for an account and topic.
// Topics outside the enumerated set are rejected with ErrInvalidTopic.
func (b *Builder) Build(accountID string, topic Topic) (*Payload, error) {
	if topic != TopicDocument && topic != TopicStock {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidTopic, topic)
	}
	return &Payload{
		Request: Notification{
			AccountID:  strings.TrimSpace(accountID),
			Resource:   topic.ResourcePath(),
			ResourceID: resourceID,
			Topic:      topic,
			Action:     actionPut,
			OfficeID:   officeID,
			SentAt:     b.now().Unix(),
		},
	}, nil
}
