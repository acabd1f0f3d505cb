package domain

import "strings"

// AllowList is the fixed, ordered set of coins the service ever displays.
var AllowList = []string{
	"cardano",
	"bitcoin",
	"ethereum",
	"tether",
	"ripple",
	"binancecoin",
	"solana",
	"chainlink",
	"dogecoin",
	"vechain",
}

var tracked = func() map[string]bool {
	m := make(map[string]bool, len(AllowList))
	for _, id := range AllowList {
		m[id] = true
	}
	return m
}()

// IsTracked reports whether name matches an allow-listed coin, ignoring case.
func IsTracked(name string) bool {
	return tracked[strings.ToLower(name)]
}

// CoinID normalizes an upstream name or a route parameter into an identifier.
func CoinID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
