package view

import (
	"fmt"
	"time"

	"github.com/ericnguyen1274/Customer---App/core"
)

// PurchasedLabel is displayed instead of the price of a purchased course.
const PurchasedLabel = "Purchased"

// FormatPrice renders a course price; 0 means the course is purchased.
func FormatPrice(price int) string {
	if price == 0 {
		return PurchasedLabel
	}
	return fmt.Sprintf("$%d", price)
}

// FormatDuration renders minutes as "1h 30m" or "45m".
func FormatDuration(minutes int) string {
	hours, mins := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

func FormatAmount(amount int) string {
	return fmt.Sprintf("$%d", amount)
}

// FormatDate renders a YYYY-MM-DD date as "Jan 15, 2025"; other values are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(core.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
