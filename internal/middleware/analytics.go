package middleware

import (
	"net/http"
	"strings"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never reported as usage events.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// trackedQueryKeys are copied from the query string into the event properties.
var trackedQueryKeys = []string{"format", "reportType", "fromDate", "toDate", "date", "month"}

// UsageTracking reports every successful authenticated request as a usage event
// named after its route, e.g. /api/v1/reports/bank becomes api_v1_reports_bank.
func UsageTracking(tracker analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		event := EventName(c.FullPath())
		if event == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		for _, key := range trackedQueryKeys {
			if v := c.Query(key); v != "" {
				props[key] = v
			}
		}

		tracker.Enqueue(userID, event, props)
	}
}

// EventName turns a route template into an event name. Path parameters are dropped.
func EventName(route string) string {
	segments := strings.Split(strings.Trim(route, "/"), "/")
	kept := segments[:0]
	for _, s := range segments {
		if s == "" || strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*") {
			continue
		}
		kept = append(kept, strings.ReplaceAll(s, "-", "_"))
	}
	return strings.Join(kept, "_")
}
