package domain

type Currency string

const (
	EUR Currency = "eur"
	USD Currency = "usd"
	BTC Currency = "btc"
	CNY Currency = "cny"
	GBP Currency = "gbp"
	RUB Currency = "rur"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{EUR, USD, BTC, CNY, GBP, RUB}

// Prices holds one optional price per currency. A nil field means the
// upstream omitted it.
type Prices struct {
	EUR *float64
	USD *float64
	BTC *float64
	CNY *float64
	GBP *float64
	RUB *float64
}

func (p Prices) Get(c Currency) (float64, bool) {
	var v *float64
	switch c {
	case EUR:
		v = p.EUR
	case USD:
		v = p.USD
	case BTC:
		v = p.BTC
	case CNY:
		v = p.CNY
	case GBP:
		v = p.GBP
	case RUB:
		v = p.RUB
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// CoinSnapshot is one coin's prices at a poll instant.
type CoinSnapshot struct {
	ID     string
	Name   string
	Label  string
	Prices Prices
}

// SnapshotSet is one poll result, in upstream order, filtered to AllowList.
type SnapshotSet []CoinSnapshot

// Find locates a coin by case-insensitive identifier.
func (s SnapshotSet) Find(id string) (CoinSnapshot, bool) {
	id = CoinID(id)
	for _, c := range s {
		if c.ID == id {
			return c, true
		}
	}
	return CoinSnapshot{}, false
}
