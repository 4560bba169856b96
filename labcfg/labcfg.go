// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package labcfg 讀取執行設定檔（YAML / JSON），轉成引擎用的 coverlab.Config。
package labcfg

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/labcfg/presets"
	"github.com/zintix-labs/coverlab/sdk/core"
	"gopkg.in/yaml.v3"
)

// 每個號碼都押，所以桌面總額 = 35 * 每號押注額
const NumbersCovered = 35

// BetAmounts 桌面常用的總押注額（每號 1、2、3、100、150、200）
var BetAmounts = []int{35, 70, 105, 3500, 5250, 7000}

// RunSetting 一份執行設定
type RunSetting struct {
	Series       int      `yaml:"series" json:"series"`
	Retry        int      `yaml:"retry" json:"retry"`
	BetUnit      int      `yaml:"bet_unit" json:"bet_unit"`           // 每號押注額
	BetAmount    int      `yaml:"bet_amount" json:"bet_amount"`       // 桌面總額，必須是 35 的倍數
	AttemptLimit int      `yaml:"attempt_limit" json:"attempt_limit"` // 只有單系列時有效
	Seed         *int64   `yaml:"seed" json:"seed"`                   // nil = 隨機
	BetsFile     string   `yaml:"bets_file" json:"bets_file"`
	Bets         []string `yaml:"bets" json:"bets"` // 直接內嵌的下注行，優先於 BetsFile
	Lang         string   `yaml:"lang" json:"lang"`
	RNG          string   `yaml:"rng" json:"rng"`
	Runs         int      `yaml:"runs" json:"runs"`
	Workers      int      `yaml:"workers" json:"workers"`
}

// GetRunSettingByYAML
// 會讀取 YAML 設定、補齊預設值並執行基本檢查後回傳。
func GetRunSettingByYAML(data []byte) (*RunSetting, error) {
	return decode(data, yaml.Unmarshal, "failed to unmarshal yaml")
}

// GetRunSettingByJSON
// 會讀取 Json 設定、補齊預設值並執行基本檢查後回傳
func GetRunSettingByJSON(data []byte) (*RunSetting, error) {
	return decode(data, json.Unmarshal, "can not unmarshal json byte")
}

// stake 只用來判斷 bet_unit / bet_amount 是否出現在文件裡
type stake struct {
	BetUnit   *int `yaml:"bet_unit" json:"bet_unit"`
	BetAmount *int `yaml:"bet_amount" json:"bet_amount"`
}

// decode 先放預設值再解碼，文件裡明確寫出的值（包含 0）一律保留給 Normalize 檢查。
func decode(data []byte, unmarshal func([]byte, any) error, msg string) (*RunSetting, error) {
	rs := &RunSetting{Series: 1}
	if err := unmarshal(data, rs); err != nil {
		return nil, invalid(err, msg)
	}
	var st stake
	if err := unmarshal(data, &st); err != nil {
		return nil, invalid(err, msg)
	}
	if err := rs.ApplyStake(st.BetUnit, st.BetAmount); err != nil {
		return nil, errs.Wrap(err, "run setting initialized err")
	}
	if err := rs.Normalize(); err != nil {
		return nil, errs.Wrap(err, "run setting initialized err")
	}
	return rs, nil
}

// Load 依副檔名讀取設定檔（.json 以外一律視為 YAML）。
// 相對路徑的 bets_file 以設定檔所在目錄為基準。
func Load(path string) (*RunSetting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "read run setting "+path)
	}
	var rs *RunSetting
	if strings.EqualFold(filepath.Ext(path), ".json") {
		rs, err = GetRunSettingByJSON(data)
	} else {
		rs, err = GetRunSettingByYAML(data)
	}
	if err != nil {
		return nil, err
	}
	if rs.BetsFile != "" && !filepath.IsAbs(rs.BetsFile) {
		rs.BetsFile = filepath.Join(filepath.Dir(path), rs.BetsFile)
	}
	return rs, nil
}

// Preset 讀取內嵌的預設設定，例如 "default"、"batch"。
func Preset(name string) (*RunSetting, error) {
	data, err := fs.ReadFile(presets.FS, name+".yaml")
	if err != nil {
		return nil, errs.Invalid("preset", "unknown preset %q", name)
	}
	return GetRunSettingByYAML(data)
}

// SampleBets 內嵌的範例下注序列
func SampleBets() bet.Sequence {
	data, err := fs.ReadFile(presets.FS, "serie.txt")
	if err != nil {
		return bet.Sequence{}
	}
	return bet.ParseText(string(data))
}

// ApplyStake 設定押注額，nil 表示呼叫端沒有給：
//   - 兩者皆 nil 時每號 1。
//   - 明確給的值照原樣保留，< 1 的 bet_unit 或 <= 0 的 bet_amount 直接拒絕。
func (rs *RunSetting) ApplyStake(unit, amount *int) error {
	if unit == nil && amount == nil {
		rs.BetUnit, rs.BetAmount = 1, 0
		return nil
	}
	rs.BetUnit, rs.BetAmount = 0, 0
	if unit != nil {
		if *unit < 1 {
			return errs.Invalid("bet_unit", "bet unit must be >= 1, got %d", *unit)
		}
		rs.BetUnit = *unit
	}
	if amount != nil {
		if *amount <= 0 {
			return errs.Invalid("bet_amount", "bet amount must be > 0, got %d", *amount)
		}
		rs.BetAmount = *amount
	}
	return nil
}

// Normalize 檢查設定並換算衍生欄位，不替換任何不合法的值：
//   - bet_amount 必須是 35 的倍數，換算成 bet_unit；兩者都給時必須一致。
//   - 多系列時 attempt_limit 歸零。
//
// series / bet_unit 的預設值只在解碼前（或由呼叫端）給，這裡的 0 一律回傳 errs.Warn。
func (rs *RunSetting) Normalize() error {
	switch {
	case rs.BetAmount < 0:
		return errs.Invalid("bet_amount", "bet amount must be >= 0, got %d", rs.BetAmount)
	case rs.BetAmount%NumbersCovered != 0:
		return errs.Invalid("bet_amount", "bet amount must be a multiple of %d, got %d", NumbersCovered, rs.BetAmount)
	case rs.BetAmount > 0 && rs.BetUnit != 0 && rs.BetUnit*NumbersCovered != rs.BetAmount:
		return errs.Invalid("bet_unit", "bet_unit %d disagrees with bet_amount %d", rs.BetUnit, rs.BetAmount)
	case rs.BetAmount > 0:
		rs.BetUnit = rs.BetAmount / NumbersCovered
	}
	if err := rs.ToConfig().Valid(); err != nil {
		return err
	}
	rs.BetAmount = rs.BetUnit * NumbersCovered

	// 有限次數損益只對單一系列有意義
	if rs.Series != 1 {
		rs.AttemptLimit = 0
	}
	if rs.RNG == "" {
		rs.RNG = string(core.KindPCG64)
	}
	if _, err := core.FactoryOf(core.Kind(rs.RNG)); err != nil {
		return err
	}
	if rs.Runs < 0 {
		return errs.Invalid("runs", "runs must be >= 0, got %d", rs.Runs)
	}
	if rs.Workers < 0 {
		return errs.Invalid("workers", "workers must be >= 0, got %d", rs.Workers)
	}
	return nil
}

// ToConfig 轉成引擎設定
func (rs *RunSetting) ToConfig() coverlab.Config {
	return coverlab.Config{
		SeriesCount:  rs.Series,
		RetryBudget:  rs.Retry,
		BetUnit:      rs.BetUnit,
		AttemptLimit: rs.AttemptLimit,
	}
}

// Factory 回傳設定的 PRNG 工廠
func (rs *RunSetting) Factory() core.Factory {
	f, err := core.FactoryOf(core.Kind(rs.RNG))
	if err != nil {
		return core.Default()
	}
	return f
}

// Sequence 取得下注序列：內嵌的 bets 優先，其次 bets_file，兩者皆無時用內嵌範例。
func (rs *RunSetting) Sequence() (bet.Sequence, error) {
	switch {
	case len(rs.Bets) > 0:
		return bet.ParseText(strings.Join(rs.Bets, "\n")), nil
	case rs.BetsFile != "":
		return bet.Load(rs.BetsFile)
	}
	return SampleBets(), nil
}

func invalid(cause error, msg string) *errs.E {
	e := errs.Wrap(cause, msg)
	e.ErrLv = errs.Warn
	e.Field = "setting"
	return e
}
