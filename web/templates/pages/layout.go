package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// pageLayout wraps page content in the shared HTML shell with the
// site header and the HTMX script
func pageLayout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s - Little Readers Bookshop</title>
	<script src="https://unpkg.com/htmx.org@1.9.10"></script>
	<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-amber-50 min-h-screen">
	<header class="bg-white shadow-sm">
		<nav class="max-w-6xl mx-auto px-4 py-4 flex items-center justify-between">
			<a href="/" class="text-2xl font-bold text-amber-700">Little Readers</a>
			<div class="flex gap-6 text-sm font-medium text-gray-700">
				<a href="/books" class="hover:text-amber-700">Books</a>
				<a href="/categories" class="hover:text-amber-700">Categories</a>
				<a href="/cart" class="hover:text-amber-700">Cart</a>
			</div>
		</nav>
	</header>
	<main class="max-w-6xl mx-auto px-4 py-8">
`, esc(title)); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `
	</main>
	<footer class="text-center text-sm text-gray-400 py-8">Little Readers Bookshop</footer>
</body>
</html>
`)
		return err
	})
}

// csrfField renders the hidden CSRF input for forms
func csrfField(ctx context.Context, w io.Writer) error {
	_, err := fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, esc(getCSRFToken(ctx)))
	return err
}
