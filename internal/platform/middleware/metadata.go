package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type deviceKey struct{}

// ClientMetadata summarizes the caller's User-Agent into a readable device
// label ("Chrome on macOS") and stores it in the request context. Audit events
// pick it up so the trail records which device a party acted from.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if summary := summarizeUserAgent(r.UserAgent()); summary != "" {
			ctx = context.WithValue(ctx, deviceKey{}, summary)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDevice retrieves the device summary from the context, if any.
func GetDevice(ctx context.Context) string {
	if d, ok := ctx.Value(deviceKey{}).(string); ok {
		return d
	}
	return ""
}

func summarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	os := ua.OS()

	browser = strings.TrimSpace(browser)
	os = strings.TrimSpace(os)
	switch {
	case browser == "" && os == "":
		return "Unknown Device"
	case os == "":
		return browser
	case browser == "":
		return os
	default:
		return browser + " on " + os
	}
}
