package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/logx"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

type priceView struct {
	Currency string
	Text     string
	// Raw is the unformatted number; the page script compares goals against
	// it instead of parsing Text.
	Raw string
	OK  bool
}

type coinView struct {
	ID         string
	Name       string
	Label      string
	EUR        priceView
	Prices     []priceView
	Goal       string
	GoalStatus domain.GoalStatus
}

type overviewPage struct {
	Coins []coinView
}

type detailPage struct {
	Coin coinView
}

func newPriceView(c domain.Currency, prices domain.Prices) priceView {
	v, ok := prices.Get(c)
	if !ok {
		return priceView{Currency: string(c), Text: "n/a"}
	}
	return priceView{
		Currency: string(c),
		Text:     domain.FormatPrice(c, v),
		Raw:      strconv.FormatFloat(v, 'f', -1, 64),
		OK:       true,
	}
}

func newCoinView(c domain.CoinSnapshot, goal string) coinView {
	view := coinView{
		ID:         c.ID,
		Name:       c.Name,
		Label:      c.Label,
		EUR:        newPriceView(domain.EUR, c.Prices),
		Goal:       goal,
		GoalStatus: domain.GoalNone,
	}
	for _, cur := range domain.Currencies {
		view.Prices = append(view.Prices, newPriceView(cur, c.Prices))
	}
	if eur, ok := c.Prices.Get(domain.EUR); ok {
		view.GoalStatus = domain.CompareGoal(eur, goal)
	}
	return view
}

func newOverviewPage(set domain.SnapshotSet, goals domain.GoalMapping) overviewPage {
	page := overviewPage{Coins: make([]coinView, 0, len(set))}
	for _, c := range set {
		page.Coins = append(page.Coins, newCoinView(c, goals[c.ID]))
	}
	return page
}

// render executes into a buffer first so a template failure still yields a
// clean 500 instead of a truncated page.
func render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		rid, _ := r.Context().Value(requestIDKey).(string)
		logx.L().Error("render_failed", zap.String("template", name), zap.String("request_id", rid), zap.Error(err))
		internalError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
