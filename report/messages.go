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

// Package report 負責把 RunReport 轉成人看的文字、表格，或 JSON / YAML。
//
// 語系字串透過明確傳入的 *Messages 取得，不依賴任何全域語系設定。
package report

import (
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/coverlab/wheel"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// 訊息鍵
const (
	keyExtracted    = "extracted"
	keyAverage      = "average"
	keyFirstFailure = "first_failure"
	keyNoFailure    = "no_failure"
	keyPerSeries    = "per_series"
	keySeries       = "series"
	keyTotal        = "total"
	keyBounded      = "bounded"
)

var supported = []language.Tag{language.Italian, language.English}

var matcher = language.NewMatcher(supported)

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Italian))
	set := func(key, it, en string) {
		_ = b.SetString(language.Italian, key, it)
		_ = b.SetString(language.English, key, en)
	}
	set(keyExtracted, ", numero estratto: %d (%s)", ", drawn number: %d (%s)")
	set(keyAverage, "Media dei punti (ovvero delle vittorie): %s", "Average points (that is, wins): %s")
	set(keyFirstFailure, "Il primo fallimento si registra dopo %d tentativi nella serie %d.", "The first failure occurs after %d attempts in series %d.")
	set(keyNoFailure, "Non ci sono stati fallimenti nelle serie.", "There were no failures in the series.")
	set(keyPerSeries, "**Guadagno/Perdita per ciascuna serie**", "**Profit/Loss per series**")
	set(keySeries, "Serie %d: %s", "Series %d: %s")
	set(keyTotal, "Somma complessiva: %s", "Overall total: %s")
	set(keyBounded, "Guadagno/Perdita fino al tentativo %d: %s", "Profit/Loss up to attempt %d: %s")
	return b
}

// Messages 一個語系的完整訊息表
type Messages struct {
	Tag     language.Tag
	p       *message.Printer
	colors  map[wheel.Color]string
	parity  map[wheel.Parity]string
	ranges  map[wheel.Range]string
	money   func(decimal.Decimal) string
	average func(float64) string
}

// Italian 原始介面使用的義大利文
var Italian = &Messages{
	Tag:    language.Italian,
	p:      message.NewPrinter(language.Italian, message.Catalog(cat)),
	colors: map[wheel.Color]string{wheel.Green: "verde", wheel.Red: "rosso", wheel.Black: "nero"},
	parity: map[wheel.Parity]string{wheel.Even: "pari", wheel.Odd: "dispari"},
	ranges: map[wheel.Range]string{wheel.Low: "basso", wheel.High: "alto"},
	money:  func(d decimal.Decimal) string { return d.String() + "€" },
	average: func(v float64) string {
		return decimal.NewFromFloat(v).Round(4).String()
	},
}

// English 英文
var English = &Messages{
	Tag:    language.English,
	p:      message.NewPrinter(language.English, message.Catalog(cat)),
	colors: map[wheel.Color]string{wheel.Green: "green", wheel.Red: "red", wheel.Black: "black"},
	parity: map[wheel.Parity]string{wheel.Even: "even", wheel.Odd: "odd"},
	ranges: map[wheel.Range]string{wheel.Low: "low", wheel.High: "high"},
	money:  func(d decimal.Decimal) string { return "€" + d.StringFixed(2) },
	average: func(v float64) string {
		return decimal.NewFromFloat(v).StringFixed(2)
	},
}

// MessagesFor 依語系標籤挑選最接近的訊息表；無法匹配時回到義大利文。
func MessagesFor(tag language.Tag) *Messages {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Italian
	}
	if supported[idx] == language.English {
		return English
	}
	return Italian
}

// MessagesForName 解析 BCP 47 字串（例如 "it"、"en-US"）；空字串或無法解析時回到義大利文。
func MessagesForName(name string) *Messages {
	if name == "" {
		return Italian
	}
	tag, err := language.Parse(name)
	if err != nil {
		return Italian
	}
	return MessagesFor(tag)
}

// Money 以語系格式輸出金額
func (m *Messages) Money(v int) string {
	return m.money(decimal.NewFromInt(int64(v)))
}

// Pocket 以 "顏色, 奇偶, 高低" 描述號碼；0 沒有高低區。
func (m *Messages) Pocket(n int) string {
	p := wheel.Describe(n)
	s := m.colors[p.Color] + ", " + m.parity[p.Parity]
	if r, ok := m.ranges[p.Range]; ok {
		s += ", " + r
	}
	return s
}

func (m *Messages) sprintf(key string, a ...any) string {
	return m.p.Sprintf(key, a...)
}
