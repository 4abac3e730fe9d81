// Package names normaliza nombres de personas para mostrar y comparar.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.Spanish)

// Normalize colapsa espacios y capitaliza cada palabra: "  maría  JOSÉ " -> "María José".
func Normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return title.String(s)
}

// Join une nombre y apellidos ya normalizados, omitiendo partes vacías.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = Normalize(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
