package prober

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/DIMO-Network/webhook-validator/internal/services/notification"
)

// ErrInvalidInput marks requests rejected before any outbound call.
var ErrInvalidInput = errors.New("invalid input")

// Request is a probe as submitted by the operator.
type Request struct {
	AccountID string
	Topic     string
	TargetURL string
}

type validRequest struct {
	accountID string
	topic     notification.Topic
	targetURL string
}

func validateRequest(req Request) (validRequest, error) {
	accountID := strings.TrimSpace(req.AccountID)
	if accountID == "" {
		return validRequest{}, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if err := notification.ValidateAccountID(accountID); err != nil {
		return validRequest{}, fmt.Errorf("%w: account id must be a positive integer", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Topic) == "" {
		return validRequest{}, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	topic, err := notification.ParseTopic(req.Topic)
	if err != nil {
		return validRequest{}, fmt.Errorf("%w: topic must be '%s' or '%s'", ErrInvalidInput, notification.TopicDocument, notification.TopicStock)
	}
	targetURL, err := validateTargetURL(req.TargetURL)
	if err != nil {
		return validRequest{}, err
	}
	return validRequest{accountID: accountID, topic: topic, targetURL: targetURL}, nil
}

func validateTargetURL(targetURL string) (string, error) {
	targetURL = strings.TrimSpace(targetURL)
	if targetURL == "" {
		return "", fmt.Errorf("%w: webhook URL is required", ErrInvalidInput)
	}
	parsedURL, err := url.ParseRequestURI(targetURL)
	if err != nil {
		return "", fmt.Errorf("%w: webhook URL is not a valid URL", ErrInvalidInput)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("%w: webhook URL must use http or https", ErrInvalidInput)
	}
	if parsedURL.Hostname() == "" {
		return "", fmt.Errorf("%w: webhook URL must include a host", ErrInvalidInput)
	}
	return targetURL, nil
}
