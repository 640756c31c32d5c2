package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// APIError is a non-2xx answer from an HTTP model endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai api error %d: %s", e.StatusCode, e.Message)
}

// Kind is the user-facing category of a model failure.
type Kind string

const (
	KindTimeout   Kind = "timeout"
	KindAuth      Kind = "auth"
	KindRateLimit Kind = "rate_limit"
	KindNetwork   Kind = "network"
	KindGeneric   Kind = "generic"
)

// Classify maps a provider error onto Kind. It checks typed errors first and
// falls back to well-known message fragments.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if k := kindForStatus(apiErr.StatusCode); k != "" {
			return k
		}
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if k := kindForStatus(gErr.Code); k != "" {
			return k
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "api key not valid") || strings.Contains(msg, "permission denied"):
		return KindAuth
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "quota"):
		return KindRateLimit
	case strings.Contains(msg, "network") || strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset"):
		return KindNetwork
	}
	return KindGeneric
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return KindTimeout
	}
	return ""
}

// UserMessage returns the one-line notice shown to users for kind.
func UserMessage(kind Kind) string {
	switch kind {
	case KindTimeout:
		return "AI响应超时，请稍后重试"
	case KindAuth:
		return "AI服务认证失败，请检查API密钥配置"
	case KindRateLimit:
		return "AI服务请求过于频繁，请稍后重试"
	case KindNetwork:
		return "网络连接失败，请检查网络设置"
	default:
		return "AI服务暂时出现问题，已为您提供基础推荐"
	}
}
