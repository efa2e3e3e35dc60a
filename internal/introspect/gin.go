package introspect

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// FromGinEngine reads a gin engine's route table and converts it into route
// analyses. Gin-style ":param" and "*param" segments are rewritten to the
// "{param}" placeholder form used by tool generation. Handler parameter lists
// are not recoverable from the route table; hosts that want typed handler
// params should declare them through a RouteRegistry instead.
func FromGinEngine(e *gin.Engine) []RouteAnalysis {
	var analyses []RouteAnalysis
	for _, info := range e.Routes() {
		if info.Method == "HEAD" || info.Method == "OPTIONS" {
			continue
		}
		controller, action := splitHandlerName(info.Handler)
		analyses = append(analyses, RouteAnalysis{
			URI:        normalizeGinPath(info.Path),
			Methods:    []string{info.Method},
			Controller: controller,
			Action:     action,
		})
	}
	return analyses
}

// normalizeGinPath rewrites "/users/:id" to "/users/{id}".
func normalizeGinPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// splitHandlerName splits a fully-qualified handler function name into its
// package-qualified receiver ("controller") and method ("action") parts.
func splitHandlerName(handler string) (string, string) {
	if handler == "" {
		return "", ""
	}
	idx := strings.LastIndex(handler, ".")
	if idx < 0 {
		return "", handler
	}
	action := strings.TrimSuffix(handler[idx+1:], "-fm")
	return handler[:idx], action
}
