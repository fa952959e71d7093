package pages

import (
	"context"
	"fmt"
	"html"

	"childrens-bookshop/internal/middleware"
)

// FormatCents renders an amount in cents as a dollar string
func FormatCents(amount int) string {
	return fmt.Sprintf("$%.2f", float64(amount)/100)
}

func getFormValue(formData map[string]string, key, defaultValue string) string {
	if value, exists := formData[key]; exists {
		return value
	}
	return defaultValue
}

// getCSRFToken gets the CSRF token from the request context
func getCSRFToken(ctx context.Context) string {
	return middleware.GetCSRFToken(ctx)
}

// esc escapes a string for safe interpolation into HTML
func esc(s string) string {
	return html.EscapeString(s)
}

// stars renders a filled/empty star row for a 1-5 rating
func stars(rating int) string {
	out := ""
	for i := 1; i <= 5; i++ {
		if i <= rating {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}
