package pages

import (
	"context"
	"fmt"
	"io"

	"childrens-bookshop/internal/models"

	"github.com/a-h/templ"
)

// OrderConfirmationPage renders the post-checkout confirmation
func OrderConfirmationPage(order *models.Order) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="max-w-2xl mx-auto">
	<div class="bg-white rounded-lg shadow p-8 text-center mb-8">
		<h1 class="text-3xl font-bold text-gray-800 mb-2">Thank you for your order!</h1>
		<p class="text-gray-500">A confirmation has been sent to %s</p>
		<p class="text-lg font-mono font-semibold text-amber-700 mt-4">%s</p>
		<p class="text-sm text-gray-400 mt-1">Status: %s</p>
	</div>
	<div class="bg-white rounded-lg shadow divide-y">`,
			esc(order.BillingEmail),
			esc(order.OrderNumber),
			esc(order.GetStatusDisplayName())); err != nil {
			return err
		}

		for _, item := range order.Items {
			if _, err := fmt.Fprintf(w, `<div class="flex justify-between p-4">
		<div>
			<p class="font-semibold text-gray-800">%s</p>
			<p class="text-sm text-gray-500">%s &middot; %s &times; %d</p>
		</div>
		<p class="font-semibold">%s</p>
	</div>`,
				esc(item.Title),
				esc(item.Author),
				FormatCents(item.UnitPrice),
				item.Quantity,
				FormatCents(item.Total)); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, `<div class="flex justify-between p-4 font-bold text-gray-800">
		<span>Total</span>
		<span>%s</span>
	</div>
	</div>
	<p class="text-center mt-8"><a href="/books" class="text-amber-700 underline">Continue shopping</a></p>
</div>`, FormatCents(order.TotalAmount))
		return err
	})

	return pageLayout("Order Confirmation", body)
}
