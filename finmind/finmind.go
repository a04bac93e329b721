// Package finmind fetches Taiwanese corporate-action data from the
// FinMind open API (https://finmindtrade.com).
//
// The free tier works without a token but is heavily rate limited; set
// FINMIND_TOKEN to raise the quota.
package finmind

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/shopspring/decimal"
	"github.com/ycwu/twfolio"
)

const apiURL = "https://api.finmindtrade.com/api/v4/data"

// TokenEnv is the environment variable holding the FinMind API token.
const TokenEnv = "FINMIND_TOKEN"

// Source reads the TaiwanStockDividend dataset.
type Source struct {
	token  string
	client *http.Client
}

// NewSource returns a FinMind corporate-action source. An empty token
// falls back to the FINMIND_TOKEN environment variable.
func NewSource(token string) *Source {
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	// query the dataset at most once a day per symbol
	return &Source{token: token, client: newDailyCachingClient()}
}

func (s *Source) Name() string { return "finmind" }

// payload mirrors the FinMind v4 response envelope.
type payload struct {
	Msg    string   `json:"msg"`
	Status int      `json:"status"`
	Data   []record `json:"data"`
}

// record is one TaiwanStockDividend row. Cash amounts are TWD per
// share; stock amounts are TWD of par value distributed per share.
//
//	{
//		"date": "2023-02-14",
//		"stock_id": "2330",
//		"CashEarningsDistribution": 2.75,
//		"CashStatutorySurplus": 0,
//		"StockEarningsDistribution": 0,
//		"StockStatutorySurplus": 0,
//		"CashExDividendTradingDate": "2023-03-16",
//		"StockExDividendTradingDate": "",
//		...
//	}
type record struct {
	Date                       string          `json:"date"`
	StockID                    string          `json:"stock_id"`
	CashEarningsDistribution   decimal.Decimal `json:"CashEarningsDistribution"`
	CashStatutorySurplus       decimal.Decimal `json:"CashStatutorySurplus"`
	StockEarningsDistribution  decimal.Decimal `json:"StockEarningsDistribution"`
	StockStatutorySurplus      decimal.Decimal `json:"StockStatutorySurplus"`
	CashExDividendTradingDate  string          `json:"CashExDividendTradingDate"`
	StockExDividendTradingDate string          `json:"StockExDividendTradingDate"`
}

// Taiwanese common shares have a 10 TWD par value; a stock dividend of
// 1 TWD par per share is 100 new shares per 1000 held.
var (
	parValue    = decimal.NewFromInt(10)
	perThousand = decimal.NewFromInt(1000)
)

// action converts a wire record. ok is false for announcement rows that
// distribute nothing.
func (r record) action() (a twfolio.CorporateAction, ok bool, err error) {
	cash := r.CashEarningsDistribution.Add(r.CashStatutorySurplus)
	stock := r.StockEarningsDistribution.Add(r.StockStatutorySurplus)
	if cash.IsNegative() || stock.IsNegative() {
		return a, false, fmt.Errorf("stock %s on %s: negative distribution (cash=%s, stock=%s)", r.StockID, r.Date, cash, stock)
	}
	if cash.IsZero() && stock.IsZero() {
		return a, false, nil
	}

	// The dataset dates the record by announcement; the trading date of
	// the ex event is what matters for eligibility.
	str := r.CashExDividendTradingDate
	if str == "" {
		str = r.StockExDividendTradingDate
	}
	if str == "" {
		str = r.Date
	}
	exDate, err := twfolio.ParseDate(str)
	if err != nil {
		return a, false, fmt.Errorf("stock %s: %w", r.StockID, err)
	}

	return twfolio.CorporateAction{
		Symbol:       r.StockID,
		ExDate:       exDate,
		CashDividend: twfolio.M(cash, twfolio.TWD),
		StockRatio:   stock.Div(parValue).Mul(perThousand),
	}, true, nil
}

// CorporateActions implements twfolio.ActionSource.
func (s *Source) CorporateActions(ctx context.Context, symbol string) ([]twfolio.CorporateAction, error) {
	v := url.Values{}
	v.Set("dataset", "TaiwanStockDividend")
	v.Set("data_id", symbol)
	if s.token != "" {
		v.Set("token", s.token)
	}
	addr := apiURL + "?" + v.Encode()

	var content payload
	if err := jwget(ctx, s.client, addr, &content); err != nil {
		return nil, &twfolio.GatewayError{Source: s.Name(), Err: err}
	}
	if content.Status != 200 {
		return nil, &twfolio.GatewayError{Source: s.Name(), Err: fmt.Errorf("status %d: %s", content.Status, content.Msg)}
	}

	var actions []twfolio.CorporateAction
	for _, rec := range content.Data {
		a, ok, err := rec.action()
		if err != nil {
			return nil, &twfolio.MalformedResponseError{Source: s.Name(), Err: err}
		}
		if !ok {
			continue
		}
		actions = append(actions, a)
	}
	return actions, nil
}
