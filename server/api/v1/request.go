package v1

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zintix-labs/floatrand/errs"
)

// 內部請求結構，GET 由 query 填入，POST 由 JSON body 填入。未給的欄位由 defaults 補上。

type rangeRequest struct {
	Interval string `json:"interval"`
	Bits     int    `json:"bits"`
	N        int    `json:"n"`
	Bins     int    `json:"bins"`
	Seed     *int64 `json:"seed,omitempty"`
}

func (r *rangeRequest) defaults(n int) {
	if r.Interval == "" {
		r.Interval = "[0,1)"
	}
	if r.Bits == 0 {
		r.Bits = 64
	}
	if r.N == 0 {
		r.N = n
	}
}

type normalRequest struct {
	Method string   `json:"method"`
	Mean   float64  `json:"mean"`
	Sigma  *float64 `json:"sigma,omitempty"`
	Bits   int      `json:"bits"`
	N      int      `json:"n"`
	Seed   *int64   `json:"seed,omitempty"`
}

func (r *normalRequest) defaults(n int) {
	if r.Method == "" {
		r.Method = "approx"
	}
	if r.Sigma == nil {
		one := 1.0
		r.Sigma = &one
	}
	if r.Bits == 0 {
		r.Bits = 64
	}
	if r.N == 0 {
		r.N = n
	}
}

// decode 依請求方法解析參數到 dst
func decode(q *http.Request, dst any, fromQuery func(url.Values) error) error {
	switch q.Method {
	case http.MethodGet:
		return fromQuery(q.URL.Query())
	case http.MethodPost:
		dec := json.NewDecoder(q.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return errs.WarnWrap(err, "invalid json", "")
		}
		return nil
	default:
		return errs.NewWarn("method not allowed")
	}
}

func (r *rangeRequest) fromQuery(v url.Values) error {
	r.Interval = v.Get("interval")
	var err error
	if r.Bits, err = queryInt(v, "bits"); err != nil {
		return err
	}
	if r.N, err = queryInt(v, "n"); err != nil {
		return err
	}
	if r.Bins, err = queryInt(v, "bins"); err != nil {
		return err
	}
	r.Seed, err = querySeed(v)
	return err
}

func (r *normalRequest) fromQuery(v url.Values) error {
	r.Method = v.Get("method")
	var err error
	if r.Mean, err = queryFloat(v, "mean"); err != nil {
		return err
	}
	if s := v.Get("sigma"); s != "" {
		f, err := queryFloat(v, "sigma")
		if err != nil {
			return err
		}
		r.Sigma = &f
	}
	if r.Bits, err = queryInt(v, "bits"); err != nil {
		return err
	}
	if r.N, err = queryInt(v, "n"); err != nil {
		return err
	}
	r.Seed, err = querySeed(v)
	return err
}

func queryInt(v url.Values, key string) (int, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewWithExtra(errs.Warn, key+" must be integer", s)
	}
	return n, nil
}

func queryFloat(v url.Values, key string) (float64, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.NewWithExtra(errs.Warn, key+" must be a number", s)
	}
	return f, nil
}

func querySeed(v url.Values) (*int64, error) {
	s := v.Get("seed")
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errs.NewWithExtra(errs.Warn, "seed must be int64", s)
	}
	return &n, nil
}

func checkN(n, limit int) error {
	if n < 1 || n > limit {
		return errs.Warnf("n must be between 1 and %d, got %d", limit, n)
	}
	return nil
}
