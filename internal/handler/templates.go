package handler

import (
	"fmt"
	"html/template"
	"math"
	"time"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"year": func() int {
			return time.Now().Year()
		},
		"formatRating": func(r float64) string {
			if math.IsNaN(r) {
				return "0.0"
			}
			return fmt.Sprintf("%.1f", r)
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}
}
