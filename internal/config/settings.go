package config

import "time"

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT"`
	MonPort     int    `env:"MON_PORT"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME"`

	// ProbeTimeout is the ceiling for a single outbound probe, including reading the response.
	ProbeTimeout      time.Duration `env:"PROBE_TIMEOUT"`
	ProbeUserAgent    string        `env:"PROBE_USER_AGENT"`
	ProbeMaxBodyBytes int64         `env:"PROBE_MAX_BODY_BYTES"`
	AllowInsecureTLS  bool          `env:"ALLOW_INSECURE_TLS"`

	// Classifier policy. Empty values fall back to the built-in defaults.
	WebpageMinBytes   int      `env:"WEBPAGE_MIN_BYTES"`
	SmallBodyMaxBytes int      `env:"SMALL_BODY_MAX_BYTES"`
	AckTokens         []string `env:"ACK_TOKENS" envSeparator:","`
	WebpageMarkers    []string `env:"WEBPAGE_MARKERS" envSeparator:","`
	AckCondition      string   `env:"ACK_CONDITION"`
}

const (
	defaultPort         = 8080
	defaultMonPort      = 8888
	defaultServiceName  = "webhook-validator"
	defaultLogLevel     = "info"
	defaultProbeTimeout = 3 * time.Second
	defaultUserAgent    = "Webhook-Validator/1.0"
	defaultMaxBodyBytes = 64 * 1024
	maxProbeTimeout     = 30 * time.Second
)

// ApplyDefaults fills zero values with the service defaults.
func (s *Settings) ApplyDefaults() {
	if s.Port == 0 {
		s.Port = defaultPort
	}
	if s.MonPort == 0 {
		s.MonPort = defaultMonPort
	}
	if s.ServiceName == "" {
		s.ServiceName = defaultServiceName
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = defaultProbeTimeout
	}
	if s.ProbeTimeout > maxProbeTimeout {
		s.ProbeTimeout = maxProbeTimeout
	}
	if s.ProbeUserAgent == "" {
		s.ProbeUserAgent = defaultUserAgent
	}
	if s.ProbeMaxBodyBytes <= 0 {
		s.ProbeMaxBodyBytes = defaultMaxBodyBytes
	}
}
