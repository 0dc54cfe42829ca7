package finnhub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexFloat is a float64 that unmarshals from either a JSON number or a
// string-encoded number. Finnhub responses are inconsistent about which
// encoding they use for price fields.
type FlexFloat float64

// UnmarshalJSON accepts 123.4, "123.4" and null (left as zero).
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
		if len(data) == 0 {
			return nil
		}
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("failed to parse number %q: %w", data, err)
	}
	*f = FlexFloat(value)
	return nil
}

// quoteResponse maps the Finnhub /quote payload:
// c = current price, d = change, dp = percent change, h = high, l = low,
// o = open, pc = previous close, t = timestamp.
type quoteResponse struct {
	Current       FlexFloat  `json:"c"`
	Change        FlexFloat  `json:"d"`
	ChangePercent *FlexFloat `json:"dp"`
	High          FlexFloat  `json:"h"`
	Low           FlexFloat  `json:"l"`
	Open          FlexFloat  `json:"o"`
	PreviousClose FlexFloat  `json:"pc"`
	Timestamp     int64      `json:"t"`
}

// profileResponse maps the subset of the Finnhub /stock/profile2 payload we
// care about.
type profileResponse struct {
	Name string `json:"name"`
}

var _ json.Unmarshaler = (*FlexFloat)(nil)
