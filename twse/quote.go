package twse

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/ycwu/twfolio"
)

/*
	{
	    "msgArray": [
	        {
	            "c": "2330",
	            "n": "台積電",
	            "z": "1150.00",
	            "y": "1145.00",
	            "d": "20250829",
	            "t": "13:30:00",
	            ...
	        }
	    ],
	    "rtmessage": "OK",
	    "rtcode": "0000"
	}
*/

// QuoteSource reads the MIS intraday feed. Quotes are live, so nothing
// is cached.
type QuoteSource struct {
	client *http.Client
}

func NewQuoteSource() *QuoteSource {
	return &QuoteSource{client: new(http.Client)}
}

func (q *QuoteSource) Name() string { return "twse-mis" }

// Quote implements twfolio.QuoteSource.
func (q *QuoteSource) Quote(ctx context.Context, symbol string) (twfolio.Quote, error) {
	addr := fmt.Sprintf("https://mis.twse.com.tw/stock/api/getStockInfo.jsp?ex_ch=tse_%s.tw&json=1&delay=0", symbol)

	var jobj any
	if err := jwget(ctx, q.client, addr, &jobj); err != nil {
		return twfolio.Quote{}, &twfolio.GatewayError{Source: q.Name(), Err: fmt.Errorf("error retrieving %q: %w", symbol, err)}
	}

	// z is the last trade; outside trading hours, or before the first
	// trade of the day, the feed sends "-" and y (yesterday's close) is
	// the best available value.
	price, err := q.extract(jobj, "$.msgArray[0].z")
	if err != nil {
		price, err = q.extract(jobj, "$.msgArray[0].y")
	}
	if err != nil {
		return twfolio.Quote{}, &twfolio.MalformedResponseError{Source: q.Name(), Err: fmt.Errorf("no price for %q: %w", symbol, err)}
	}

	return twfolio.Quote{
		Symbol: symbol,
		Price:  twfolio.M(price, twfolio.TWD),
		At:     q.timestamp(jobj),
		Source: q.Name(),
	}, nil
}

// extract pulls one numeric value out of the quirky MIS payload.
func (q *QuoteSource) extract(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	// the feed sends every number as a string, and "-" for absent.
	sval, ok := jval.(string)
	if !ok {
		if val, ok := jval.(float64); ok {
			return val, nil
		}
		return 0, fmt.Errorf("%q is neither a string nor a float: %v", path, jval)
	}
	sval = strings.ReplaceAll(sval, ",", "")
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %q", path, sval)
	}
	if val == 0 {
		return 0, fmt.Errorf("%q is empty", path)
	}
	return val, nil
}

// timestamp recovers the quote time from the d/t fields, in exchange
// local time. A missing or unparseable stamp degrades to now: the
// price is still worth returning.
func (q *QuoteSource) timestamp(jobj any) time.Time {
	d, errD := q.extractString(jobj, "$.msgArray[0].d")
	t, errT := q.extractString(jobj, "$.msgArray[0].t")
	if errD != nil || errT != nil {
		return time.Now()
	}
	at, err := time.ParseInLocation("20060102 15:04:05", d+" "+t, taipei)
	if err != nil {
		return time.Now()
	}
	return at
}

func (q *QuoteSource) extractString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return s, nil
}
