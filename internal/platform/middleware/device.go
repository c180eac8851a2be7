package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

// DeviceInfo describes the device a check-in request came from. Door staff
// use shared tablets; the audit log records which kind of device confirmed
// each guest.
type DeviceInfo struct {
	Browser  string
	OS       string
	Mobile   bool
	RawAgent string
}

type deviceInfoKey struct{}

// DeviceMetadata parses the User-Agent header once per request and stores the
// result in the context for audit logging.
func DeviceMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		browser, _ := ua.Browser()
		info := DeviceInfo{
			Browser:  browser,
			OS:       ua.OS(),
			Mobile:   ua.Mobile(),
			RawAgent: r.UserAgent(),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), deviceInfoKey{}, info)))
	})
}

// GetDeviceInfo retrieves device metadata from the context.
func GetDeviceInfo(ctx context.Context) DeviceInfo {
	if info, ok := ctx.Value(deviceInfoKey{}).(DeviceInfo); ok {
		return info
	}
	return DeviceInfo{}
}
