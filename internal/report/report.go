package report

import (
	"strings"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/payment"
)

// NotPaidLabel is the bucket unpaid bills accumulate into.
const NotPaidLabel = "Not paid"

// Aggregate sums the totals of the given view-models into buckets labelled by
// payment-method display name, plus the "Not paid" bucket. The input is
// expected to be pre-filtered to the reporting window.
//
// Accumulation keys on payment-method id; a relabelling pass swaps ids for
// names at the end. An unpaid bill counts only towards "Not paid" regardless
// of its payment reference. A paid bill whose payment reference matches no
// known method contributes to nothing at all: that drop is long-standing
// behaviour this function intentionally reproduces.
func Aggregate(bills []bill.ViewModel, methods []payment.Method) map[string]float64 {
	totals := map[string]float64{NotPaidLabel: 0}

	for _, m := range methods {
		totals[m.ID.String()] = 0
	}

	for _, b := range bills {
		if b.PaymentStatus == bill.StatusNotPaid {
			totals[NotPaidLabel] += b.TotalPayment
			continue
		}

		key := b.PaymentMethodID.String()
		if _, known := totals[key]; known {
			totals[key] += b.TotalPayment
		}
	}

	// Relabel id buckets to display names. Buckets named "cash" (any case)
	// and the "Not paid" bucket pass through verbatim; an id bucket with no
	// matching method is omitted.
	final := make(map[string]float64, len(totals))

	for key, amount := range totals {
		if key == NotPaidLabel || strings.EqualFold(key, "cash") {
			final[key] = amount
			continue
		}

		if name, ok := methodName(methods, key); ok {
			final[name] = amount
		}
	}

	return final
}

func methodName(methods []payment.Method, id string) (string, bool) {
	for _, m := range methods {
		if m.ID.String() == id {
			return m.Name, true
		}
	}

	return "", false
}
