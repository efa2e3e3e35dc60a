package generator

import (
	"strings"
	"unicode"
)

// ToolNameFromEntity derives a base tool name from an entity's short name by
// converting PascalCase/camelCase to snake_case.
// "UserProfile" becomes "user_profile".
func ToolNameFromEntity(shortName string) string {
	var b strings.Builder
	for i, r := range shortName {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToolNameFromRoute derives a tool name for a route. A named route maps
// directly ("users.show" becomes "users_show"); otherwise the URI is slugged
// and prefixed with the route's first HTTP verb ("GET /users/{id}" becomes
// "get_users_id").
func ToolNameFromRoute(routeName, uri string, methods []string) string {
	if routeName != "" {
		return strings.ReplaceAll(routeName, ".", "_")
	}

	method := "get"
	if len(methods) > 0 {
		method = strings.ToLower(methods[0])
	}
	return method + "_" + slugURI(uri)
}

// slugURI converts a URI template into a snake_case slug: path separators
// become underscores and parameter braces are dropped.
func slugURI(uri string) string {
	var b strings.Builder
	lastUnderscore := true // swallow leading separators
	for _, r := range strings.ToLower(uri) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '{' || r == '}':
			// drop parameter braces entirely
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// TitleWords turns a snake_case identifier into a human-readable description:
// underscores become spaces and each word is title-cased.
// "first_name" becomes "First Name".
func TitleWords(field string) string {
	words := strings.Split(strings.ReplaceAll(field, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// titleRouteName formats a route name for use as a tool description:
// dots, underscores and hyphens become spaces, each word title-cased.
func titleRouteName(name string) string {
	return TitleWords(strings.NewReplacer(".", "_", "-", "_").Replace(name))
}
