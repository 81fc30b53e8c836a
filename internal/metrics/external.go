package metrics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// uuidPattern collapses entity ids so endpoint labels stay low-cardinality.
var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// statusErrorTypes names the HTTP statuses the notification service is
// known to answer with; everything else falls back to a coarse class.
var statusErrorTypes = map[int]string{
	400: "bad_request",
	401: "unauthorized",
	403: "forbidden",
	404: "not_found",
	408: "request_timeout",
	429: "too_many_requests",
	500: "internal_server_error",
	502: "bad_gateway",
	503: "service_unavailable",
	504: "gateway_timeout",
}

// RecordExternalAPICall observes one outbound call, currently the
// notification dispatch to noti-service. Both transport failures and
// HTTP error statuses count as errors.
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(endpoint, getErrorType(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint replaces embedded ids with a template placeholder,
// e.g. /api/notifications/123e4567-... becomes /api/notifications/{id}.
func normalizeEndpoint(endpoint string) string {
	return uuidPattern.ReplaceAllString(endpoint, "{id}")
}

// getErrorType labels the failure, preferring the HTTP status over the
// shape of the transport error.
func getErrorType(statusCode int, err error) string {
	if name, ok := statusErrorTypes[statusCode]; ok {
		return name
	}
	switch {
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500 && statusCode < 600:
		return "server_error"
	}

	if err == nil {
		return "unknown"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection_refused"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "EOF"), strings.Contains(msg, "connection reset"):
		return "connection_reset"
	case strings.Contains(msg, "TLS"), strings.Contains(msg, "certificate"):
		return "tls_error"
	}
	return "network_error"
}
