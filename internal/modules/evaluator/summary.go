// README: Short human-readable summaries for evaluation results.
package evaluator

import (
	"fmt"
	"strings"
)

func verdictSummary(v Verdict, pay, effectiveHourly, expectedPay, totalMinutes float64) string {
	return fmt.Sprintf("%s: $%.2f pays $%.2f/hr vs $%.2f/hr target over %.1f min",
		strings.ToUpper(string(v)), pay, effectiveHourly, expectedPay, totalMinutes)
}

func maximaSummary(pay float64, m Maxima) string {
	return fmt.Sprintf("$%.2f covers up to %.1f min: %.1f mi round trip or %d items",
		pay, m.MaxMinutes, m.MaxMiles, m.MaxItems)
}
