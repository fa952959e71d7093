package pages

import (
	"context"
	"fmt"
	"io"

	"childrens-bookshop/internal/models"

	"github.com/a-h/templ"
)

// CartPage renders the shopping cart
func CartPage(cart *models.Cart) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="text-3xl font-bold text-gray-800 mb-6">Your Cart</h1>
<div id="cart-items">`); err != nil {
			return err
		}

		if err := CartItemsPartial(cart).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if !cart.IsEmpty() {
			if _, err := io.WriteString(w, `<div class="mt-8 flex gap-4">
	<a href="/checkout" class="bg-amber-600 text-white rounded px-6 py-2 font-semibold">Checkout</a>
	<form method="POST" action="/cart/clear" hx-post="/cart/clear">`); err != nil {
				return err
			}
			if err := csrfField(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<button type="submit" class="text-gray-500 underline px-4 py-2">Clear cart</button>
	</form>
</div>`); err != nil {
				return err
			}
		}

		return nil
	})

	return pageLayout("Cart", body)
}

// CartItemsPartial renders the cart line items. HTMX swaps this
// fragment in place after quantity changes.
func CartItemsPartial(cart *models.Cart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if cart.IsEmpty() {
			_, err := io.WriteString(w, `<p class="text-gray-500">Your cart is empty. <a href="/books" class="text-amber-700 underline">Browse books</a></p>`)
			return err
		}

		if _, err := io.WriteString(w, `<div class="bg-white rounded-lg shadow divide-y">`); err != nil {
			return err
		}

		for _, line := range cart.Lines {
			imageURL := line.ImageURL
			if imageURL == "" {
				imageURL = "/static/placeholder-cover.svg"
			}

			if _, err := fmt.Fprintf(w, `<div class="flex items-center gap-4 p-4">
	<img src="%s" alt="%s" class="w-16 h-20 object-cover rounded">
	<div class="flex-1">
		<p class="font-semibold text-gray-800">%s</p>
		<p class="text-sm text-gray-500">%s each</p>
	</div>
	<form hx-post="/cart/change" hx-target="#cart-items" hx-swap="innerHTML" class="flex items-center gap-2">`,
				esc(imageURL), esc(line.Title),
				esc(line.Title),
				FormatCents(line.UnitPrice)); err != nil {
				return err
			}

			if err := csrfField(ctx, w); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, `<input type="hidden" name="book_id" value="%d">
		<button type="submit" name="delta" value="-1" class="border rounded w-8 h-8">-</button>
		<span class="w-8 text-center">%d</span>
		<button type="submit" name="delta" value="1" class="border rounded w-8 h-8">+</button>
	</form>
	<p class="w-24 text-right font-semibold">%s</p>
	<form hx-post="/cart/remove" hx-target="#cart-items" hx-swap="innerHTML">`,
				line.BookID, line.Quantity, FormatCents(line.Subtotal)); err != nil {
				return err
			}

			if err := csrfField(ctx, w); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, `<input type="hidden" name="book_id" value="%d">
		<button type="submit" class="text-gray-400 hover:text-rose-600">&times;</button>
	</form>
</div>`, line.BookID); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, `<div class="flex justify-between p-4 font-bold text-gray-800">
	<span>Total (%d items)</span>
	<span>%s</span>
</div>
</div>`, cart.ItemCount(), FormatCents(cart.Total))
		return err
	})
}

// CheckoutPage renders the checkout form with any validation errors
func CheckoutPage(cart *models.Cart, errors map[string][]string, formData map[string]string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="text-3xl font-bold text-gray-800 mb-6">Checkout</h1>
<div class="grid md:grid-cols-2 gap-10">
	<div>`); err != nil {
			return err
		}

		if err := CartItemsPartial(cart).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</div>
	<form method="POST" action="/checkout" class="bg-white rounded-lg shadow p-6">`); err != nil {
			return err
		}

		if err := csrfField(ctx, w); err != nil {
			return err
		}

		if general, ok := errors["general"]; ok && len(general) > 0 {
			if _, err := fmt.Fprintf(w, `<div class="error-banner bg-rose-50 text-rose-700 rounded p-3 mb-4">%s</div>`, esc(general[0])); err != nil {
				return err
			}
		}

		if err := formField(w, "billing_name", "Full name", "text", formData, errors); err != nil {
			return err
		}
		if err := formField(w, "billing_email", "Email", "email", formData, errors); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<button type="submit" class="bg-amber-600 text-white rounded px-6 py-2 font-semibold mt-4 w-full">Place Order</button>
	</form>
</div>`)
		return err
	})

	return pageLayout("Checkout", body)
}

// formField renders a labelled input with its validation error, if any
func formField(w io.Writer, name, label, inputType string, formData map[string]string, errors map[string][]string) error {
	if _, err := fmt.Fprintf(w, `<div class="mb-4">
	<label for="%s" class="block text-sm font-medium text-gray-700 mb-1">%s</label>
	<input type="%s" id="%s" name="%s" value="%s" class="border rounded px-3 py-2 w-full">`,
		esc(name), esc(label), esc(inputType), esc(name), esc(name),
		esc(getFormValue(formData, name, ""))); err != nil {
		return err
	}

	if fieldErrors, ok := errors[name]; ok && len(fieldErrors) > 0 {
		if _, err := fmt.Fprintf(w, `<p class="text-sm text-rose-600 mt-1">%s</p>`, esc(fieldErrors[0])); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</div>`)
	return err
}
