package v1

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/corefmt"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/labcfg"
	"github.com/zintix-labs/coverlab/sdk/core"
	"github.com/zintix-labs/coverlab/wheel"
)

// RunRequest /v1/run 與 /v1/batch 共用的請求。
//
// 開號來源優先順序：spins（重播）> state（接續上一次的輪盤）> seed（空值自動產生）。
type RunRequest struct {
	Bets         []string `json:"bets,omitempty"`      // 每個元素一行
	BetsText     string   `json:"bets_text,omitempty"` // 整段文字，優先於 bets
	Series       *int     `json:"series,omitempty"`    // 沒給時 1
	Retry        int      `json:"retry"`
	BetUnit      *int     `json:"bet_unit,omitempty"`   // 與 bet_amount 都沒給時 1
	BetAmount    *int     `json:"bet_amount,omitempty"` // 35 的倍數
	AttemptLimit int      `json:"attempt_limit"`
	Seed         *int64   `json:"seed,omitempty"`
	State        string   `json:"state,omitempty"`
	Spins        []int    `json:"spins,omitempty"`
	RNG          string   `json:"rng,omitempty"`
	Lang         string   `json:"lang,omitempty"` // 非空時回應附上該語系的文字報告
	Runs         int      `json:"runs,omitempty"`
	Workers      int      `json:"workers,omitempty"`
}

// DecodeRunRequest GET 讀 query、POST 讀 JSON body。
func DecodeRunRequest(r *http.Request) (*RunRequest, error) {
	req := new(RunRequest)
	switch r.Method {
	case http.MethodGet:
		if err := req.fromQuery(r.URL.Query()); err != nil {
			return nil, err
		}
	case http.MethodPost:
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, err
			}
			return nil, errs.Invalid("body", "invalid json: %v", err)
		}
	default:
		return nil, errs.Invalid("method", "method not allowed: %s", r.Method)
	}
	return req, nil
}

func (req *RunRequest) fromQuery(q url.Values) error {
	// 有沒有出現要分辨的欄位
	opts := []struct {
		key string
		dst **int
	}{
		{"series", &req.Series},
		{"bet_unit", &req.BetUnit},
		{"bet_amount", &req.BetAmount},
	}
	for _, it := range opts {
		if s := q.Get(it.key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return errs.Invalid(it.key, "%s must be integer", it.key)
			}
			*it.dst = &v
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"retry", &req.Retry},
		{"attempt_limit", &req.AttemptLimit},
		{"runs", &req.Runs},
		{"workers", &req.Workers},
	}
	for _, it := range ints {
		if s := q.Get(it.key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return errs.Invalid(it.key, "%s must be integer", it.key)
			}
			*it.dst = v
		}
	}
	if s := q.Get("seed"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errs.Invalid("seed", "seed must be int64")
		}
		req.Seed = &v
	}
	if s := q.Get("spins"); s != "" {
		for _, f := range strings.Split(s, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return errs.Invalid("spins", "spins must be a comma separated list of integers")
			}
			req.Spins = append(req.Spins, v)
		}
	}
	// bet 可重複出現；bets 以 ';' 分隔多行
	req.Bets = append(req.Bets, q["bet"]...)
	if s := q.Get("bets"); s != "" {
		req.Bets = append(req.Bets, strings.Split(s, ";")...)
	}
	req.State = q.Get("state")
	req.RNG = q.Get("rng")
	req.Lang = q.Get("lang")
	return nil
}

// setting 轉成已正規化的執行設定；伺服器不讀檔，下注序列必須隨請求帶入。
func (req *RunRequest) setting() (*labcfg.RunSetting, bet.Sequence, error) {
	rs := &labcfg.RunSetting{
		Series:       1,
		Retry:        req.Retry,
		AttemptLimit: req.AttemptLimit,
		Seed:         req.Seed,
		Lang:         req.Lang,
		RNG:          req.RNG,
		Runs:         req.Runs,
		Workers:      req.Workers,
	}
	if req.Series != nil {
		rs.Series = *req.Series
	}
	if err := rs.ApplyStake(req.BetUnit, req.BetAmount); err != nil {
		return nil, nil, err
	}
	if err := rs.Normalize(); err != nil {
		return nil, nil, err
	}
	var seq bet.Sequence
	switch {
	case req.BetsText != "":
		seq = bet.ParseText(req.BetsText)
	case len(req.Bets) > 0:
		seq = bet.ParseText(strings.Join(req.Bets, "\n"))
	default:
		return nil, nil, errs.Invalid("bets", "bets are required")
	}
	if err := seq.Validate(); err != nil {
		return nil, nil, err
	}
	return rs, seq, nil
}

// source 依優先順序建立開號來源；回傳的 *wheel.Wheel 在重播模式下為 nil。
func (req *RunRequest) source(f core.Factory) (wheel.SpinSource, *wheel.Wheel, error) {
	if len(req.Spins) > 0 {
		s, err := wheel.NewScripted(req.Spins...)
		return s, nil, err
	}
	if req.State != "" {
		b, err := corefmt.DecodeState(req.State)
		if err != nil {
			return nil, nil, err
		}
		w := wheel.NewWith(f, 0)
		if err := w.Restore(b); err != nil {
			return nil, nil, errs.Invalid("state", "state does not match rng %q", req.RNG)
		}
		return w, w, nil
	}
	seed, err := req.seed()
	if err != nil {
		return nil, nil, err
	}
	w := wheel.NewWith(f, seed)
	return w, w, nil
}

func (req *RunRequest) seed() (int64, error) {
	if req.Seed != nil {
		return *req.Seed, nil
	}
	return randomSeed()
}

// randomSeed 使用 crypto/rand 產生 [0, MaxInt64) 的種子。
func randomSeed() (int64, error) {
	rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "seed generate failed")
	}
	return rnd.Int64(), nil
}
