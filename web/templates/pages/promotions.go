package pages

import (
	"context"
	"fmt"
	"io"

	"childrens-bookshop/internal/models"

	"github.com/a-h/templ"
)

// CountdownPartial renders the countdown fragment for a promotion
// banner. HTMX polls this endpoint to keep the clock fresh.
func CountdownPartial(promotion *models.Promotion, countdown models.Countdown) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if countdown.IsOver() {
			_, err := fmt.Fprintf(w, `<p class="text-lg font-semibold">%s has ended</p>`, esc(promotion.Name))
			return err
		}

		_, err := fmt.Fprintf(w, `<div class="flex items-center justify-between">
	<div>
		<p class="text-sm uppercase tracking-wide">%s</p>
		<p class="text-2xl font-bold">%s &mdash; %d%% off</p>
	</div>
	<div class="flex gap-4 text-center">
		<div><span class="text-3xl font-bold">%d</span><p class="text-xs uppercase">Days</p></div>
		<div><span class="text-3xl font-bold">%d</span><p class="text-xs uppercase">Hours</p></div>
		<div><span class="text-3xl font-bold">%d</span><p class="text-xs uppercase">Minutes</p></div>
	</div>
</div>`,
			esc(promotion.KindDisplayName()),
			esc(promotion.Name),
			promotion.DiscountPercent,
			countdown.Days, countdown.Hours, countdown.Minutes)
		return err
	})
}
