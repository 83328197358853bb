package yahoo

import (
	"bytes"
	"encoding/json"
)

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper. An empty
// object leaves Raw nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v *rawValue) ptr() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return e.Code + ": " + e.Description
}

type quoteSummaryResult struct {
	Price                *priceModule          `json:"price"`
	FinancialData        *financialDataModule  `json:"financialData"`
	DefaultKeyStatistics *keyStatisticsModule  `json:"defaultKeyStatistics"`
	SummaryDetail        *summaryDetailModule  `json:"summaryDetail"`
	AssetProfile         *assetProfileModule   `json:"assetProfile"`
	CalendarEvents       *calendarEventsModule `json:"calendarEvents"`
}

type priceModule struct {
	Symbol                     string    `json:"symbol"`
	LongName                   string    `json:"longName"`
	ShortName                  string    `json:"shortName"`
	RegularMarketPrice         *rawValue `json:"regularMarketPrice"`
	RegularMarketPreviousClose *rawValue `json:"regularMarketPreviousClose"`
	MarketCap                  *rawValue `json:"marketCap"`
}

type financialDataModule struct {
	CurrentPrice    *rawValue `json:"currentPrice"`
	TargetMeanPrice *rawValue `json:"targetMeanPrice"`
}

type keyStatisticsModule struct {
	TrailingEps *rawValue `json:"trailingEps"`
	ForwardEps  *rawValue `json:"forwardEps"`
}

type summaryDetailModule struct {
	PreviousClose *rawValue `json:"previousClose"`
	TrailingPE    *rawValue `json:"trailingPE"`
	MarketCap     *rawValue `json:"marketCap"`
}

type assetProfileModule struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type calendarEventsModule struct {
	Earnings struct {
		EarningsDate earningsDateList `json:"earningsDate"`
	} `json:"earnings"`
}

// earningsDateList accepts the list form Yahoo normally sends as well as a
// single date object.
type earningsDateList []rawValue

func (l *earningsDateList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var list []rawValue
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	var one rawValue
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = earningsDateList{one}
	return nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}
