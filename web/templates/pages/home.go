package pages

import (
	"context"
	"fmt"
	"io"

	"childrens-bookshop/internal/models"

	"github.com/a-h/templ"
)

// HomePage renders the storefront homepage with featured books and the
// active flash sale banner, if any
func HomePage(featured []*models.Book, promotion *models.Promotion, countdown models.Countdown) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if promotion != nil {
			if _, err := fmt.Fprintf(w, `<section class="bg-rose-600 text-white rounded-lg p-6 mb-8" id="promo-banner" hx-get="/promotions/%s/countdown" hx-trigger="every 60s" hx-swap="innerHTML">`,
				esc(string(promotion.Kind))); err != nil {
				return err
			}
			if err := CountdownPartial(promotion, countdown).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `</section>`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<h1 class="text-3xl font-bold text-gray-800 mb-6">Featured Books</h1>
<div class="grid grid-cols-2 md:grid-cols-4 gap-6">`); err != nil {
			return err
		}

		for _, book := range featured {
			if err := bookCard(w, book); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})

	return pageLayout("Home", body)
}

// bookCard renders a single catalog card used on the homepage and the
// book list
func bookCard(w io.Writer, book *models.Book) error {
	imageURL := book.ImageURL
	if imageURL == "" {
		imageURL = "/static/placeholder-cover.svg"
	}

	saleBadge := ""
	if book.IsOnSale() {
		saleBadge = fmt.Sprintf(`<span class="absolute top-2 right-2 bg-rose-600 text-white text-xs font-bold px-2 py-1 rounded">-%d%%</span>`, book.DiscountPercent())
	}

	priceBlock := fmt.Sprintf(`<span class="font-bold text-amber-700">%s</span>`, FormatCents(book.Price))
	if book.IsOnSale() {
		priceBlock = fmt.Sprintf(`<span class="font-bold text-rose-600">%s</span> <span class="text-sm text-gray-400 line-through">%s</span>`,
			FormatCents(book.Price), FormatCents(*book.WasPrice))
	}

	_, err := fmt.Fprintf(w, `<div class="relative bg-white rounded-lg shadow p-4">
	%s
	<a href="%s"><img src="%s" alt="%s" class="w-full h-48 object-cover rounded mb-3"></a>
	<a href="%s" class="font-semibold text-gray-800 hover:text-amber-700">%s</a>
	<p class="text-sm text-gray-500">%s</p>
	<p class="text-sm text-amber-500">%s</p>
	<div class="mt-2">%s</div>
</div>`,
		saleBadge,
		esc(book.URL()), esc(imageURL), esc(book.Title),
		esc(book.URL()), esc(book.Title),
		esc(book.Author),
		stars(book.Rating),
		priceBlock)
	return err
}
