package pages

import (
	"context"
	"fmt"
	"io"

	"childrens-bookshop/internal/models"

	"github.com/a-h/templ"
)

// CategoriesPage renders the category directory
func CategoriesPage(categories []*models.Category) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="text-3xl font-bold text-gray-800 mb-6">Categories</h1>
<div class="grid md:grid-cols-3 gap-6">`); err != nil {
			return err
		}

		for _, category := range categories {
			if _, err := fmt.Fprintf(w, `<a href="%s" class="bg-white rounded-lg shadow p-6 hover:shadow-md">
	<h2 class="text-xl font-semibold text-gray-800">%s</h2>
	<p class="text-sm text-gray-500 mt-1">%s</p>
	<p class="text-xs text-gray-400 mt-3">%d books</p>
</a>`,
				esc(category.URL()),
				esc(category.Name),
				esc(category.Description),
				category.BookCount); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})

	return pageLayout("Categories", body)
}
