// Package twse reads Taiwan Stock Exchange open data: the daily
// ex-rights/ex-dividend report as a corporate-action source, and the
// MIS feed for intraday quotes.
package twse

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ycwu/twfolio"
)

// reportURL is the TWT49U report: ex-rights and ex-dividend results of
// the current trading day.
const reportURL = "https://openapi.twse.com.tw/v1/exchangeReport/TWT49U"

// Source reads the ex-rights report. It only sees the current day's
// announcements, so it complements a historical source rather than
// replacing one; chain it behind finmind with twfolio.Fallback.
type Source struct {
	client *http.Client
}

func NewSource() *Source {
	return &Source{client: newDailyCachingClient()}
}

func (s *Source) Name() string { return "twse" }

// reportRow is one row of TWT49U. Every value is a string, numbers and
// ROC-calendar dates included.
//
//	{
//		"Date": "1140829",
//		"Code": "2330",
//		"Name": "台積電",
//		"RightsDividends": "5.00",
//		"RightOrDividend": "息",
//		...
//	}
type reportRow struct {
	Date            string `json:"Date"`
	Code            string `json:"Code"`
	Name            string `json:"Name"`
	RightsDividends string `json:"RightsDividends"`
	RightOrDividend string `json:"RightOrDividend"`
}

// parseROCDate parses the report's compact ROC date, e.g. "1140829".
func parseROCDate(s string) (twfolio.Date, error) {
	if len(s) < 5 {
		return twfolio.Date{}, fmt.Errorf("invalid ROC date %q", s)
	}
	day := s[len(s)-2:]
	month := s[len(s)-4 : len(s)-2]
	year := s[:len(s)-4]
	return twfolio.ParseDate(year + "/" + month + "/" + day)
}

// action converts a report row. Rows distributing stock ("權" or
// "權息") are skipped: the report carries a combined value in TWD, the
// per-share grant rate cannot be recovered from it.
func (r reportRow) action() (a twfolio.CorporateAction, ok bool, err error) {
	if strings.Contains(r.RightOrDividend, "權") {
		return a, false, nil
	}
	exDate, err := parseROCDate(r.Date)
	if err != nil {
		return a, false, err
	}
	val := strings.ReplaceAll(r.RightsDividends, ",", "")
	cash, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return a, false, fmt.Errorf("stock %s: invalid dividend value %q: %w", r.Code, r.RightsDividends, err)
	}
	if cash < 0 {
		return a, false, fmt.Errorf("stock %s: negative dividend value %q", r.Code, r.RightsDividends)
	}
	if cash == 0 {
		return a, false, nil
	}
	return twfolio.CorporateAction{
		Symbol:       r.Code,
		ExDate:       exDate,
		CashDividend: twfolio.M(cash, twfolio.TWD),
	}, true, nil
}

// CorporateActions implements twfolio.ActionSource.
func (s *Source) CorporateActions(ctx context.Context, symbol string) ([]twfolio.CorporateAction, error) {
	var rows []reportRow
	if err := jwget(ctx, s.client, reportURL, &rows); err != nil {
		return nil, &twfolio.GatewayError{Source: s.Name(), Err: err}
	}

	var actions []twfolio.CorporateAction
	for _, row := range rows {
		if row.Code != symbol {
			continue
		}
		a, ok, err := row.action()
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

// taipei is the exchange's timezone, for stamping quotes.
var taipei = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}()
