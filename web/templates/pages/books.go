package pages

import (
	"context"
	"fmt"
	"io"

	"childrens-bookshop/internal/models"

	"github.com/a-h/templ"
)

// BookListPage renders the searchable catalog listing
func BookListPage(books []*models.Book, categories []*models.Category, query, categorySlug string, total int) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1 class="text-3xl font-bold text-gray-800 mb-6">Books</h1>
<form method="GET" action="/books" class="flex flex-wrap gap-3 mb-8">
	<input type="text" name="q" value="%s" placeholder="Search by title or author" class="border rounded px-3 py-2 flex-1 min-w-[200px]">
	<select name="category" class="border rounded px-3 py-2">
		<option value="">All categories</option>`, esc(query)); err != nil {
			return err
		}

		for _, category := range categories {
			selected := ""
			if category.Slug == categorySlug {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(category.Slug), selected, esc(category.Name)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `</select>
	<label class="flex items-center gap-2 text-sm text-gray-600"><input type="checkbox" name="on_sale" value="true"> On sale</label>
	<button type="submit" class="bg-amber-600 text-white rounded px-4 py-2">Search</button>
</form>
<p class="text-sm text-gray-500 mb-4">%d books found</p>
<div class="grid grid-cols-2 md:grid-cols-4 gap-6">`, total); err != nil {
			return err
		}

		for _, book := range books {
			if err := bookCard(w, book); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})

	return pageLayout("Books", body)
}

// BookDetailPage renders a single book's detail page with the
// add-to-cart form
func BookDetailPage(book *models.Book) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		imageURL := book.ImageURL
		if imageURL == "" {
			imageURL = "/static/placeholder-cover.svg"
		}

		categoryName := ""
		if book.Category != nil {
			categoryName = book.Category.Name
		}

		priceBlock := fmt.Sprintf(`<span class="text-2xl font-bold text-amber-700">%s</span>`, FormatCents(book.Price))
		if book.IsOnSale() {
			priceBlock = fmt.Sprintf(`<span class="text-2xl font-bold text-rose-600">%s</span> <span class="text-lg text-gray-400 line-through">%s</span> <span class="text-sm text-rose-600 font-semibold">%d%% off</span>`,
				FormatCents(book.Price), FormatCents(*book.WasPrice), book.DiscountPercent())
		}

		if _, err := fmt.Fprintf(w, `<div class="grid md:grid-cols-2 gap-10">
	<img src="%s" alt="%s" class="w-full max-w-sm rounded-lg shadow">
	<div>
		<p class="text-sm uppercase tracking-wide text-gray-400">%s</p>
		<h1 class="text-3xl font-bold text-gray-800">%s</h1>
		<p class="text-lg text-gray-500 mb-2">by %s</p>
		<p class="text-amber-500 mb-4">%s</p>
		<div class="mb-6">%s</div>
		<p class="text-gray-600 mb-6">%s</p>`,
			esc(imageURL), esc(book.Title),
			esc(categoryName),
			esc(book.Title),
			esc(book.Author),
			stars(book.Rating),
			priceBlock,
			esc(book.Description)); err != nil {
			return err
		}

		if book.Available {
			if _, err := fmt.Fprintf(w, `<form method="POST" action="/cart/add" hx-post="/cart/add" hx-target="#cart-items" hx-swap="innerHTML" class="flex items-center gap-3">`); err != nil {
				return err
			}
			if err := csrfField(ctx, w); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `<input type="hidden" name="book_id" value="%d">
	<input type="number" name="quantity" value="1" min="1" class="border rounded px-3 py-2 w-20">
	<button type="submit" class="bg-amber-600 text-white rounded px-6 py-2 font-semibold">Add to Cart</button>
</form>
<div id="cart-items"></div>`, book.ID); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<p class="text-gray-400 font-semibold">Currently unavailable</p>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `
	</div>
</div>`)
		return err
	})

	return pageLayout(book.Title, body)
}
