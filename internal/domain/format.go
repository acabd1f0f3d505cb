package domain

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printers = map[Currency]*message.Printer{
	EUR: message.NewPrinter(language.Dutch),
	USD: message.NewPrinter(language.AmericanEnglish),
	CNY: message.NewPrinter(language.SimplifiedChinese),
	GBP: message.NewPrinter(language.BritishEnglish),
	RUB: message.NewPrinter(language.Russian),
}

// FormatPrice renders v the way the pages display it for currency c.
func FormatPrice(c Currency, v float64) string {
	if c == BTC {
		return strconv.FormatFloat(v, 'f', 8, 64) + " BTC"
	}
	p, ok := printers[c]
	if !ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	amount := p.Sprintf("%v", number.Decimal(v, number.Scale(2)))
	switch c {
	case EUR:
		return "€ " + amount
	case USD:
		return "$" + amount
	case CNY:
		return "¥" + amount
	case GBP:
		return "£" + amount
	case RUB:
		return amount + " ₽"
	}
	return amount
}
