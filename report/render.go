package report

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/corefmt"
	"github.com/zintix-labs/coverlab/errs"
)

// Render 定義 RunReport 的輸出行為
type Render interface {
	Write(w io.Writer, rep *coverlab.RunReport) error
}

// TextRender 逐位置軌跡 + 統計摘要，與原本桌面程式的結果區格式相同。
type TextRender struct {
	Msgs *Messages
}

func (tr *TextRender) Write(w io.Writer, rep *coverlab.RunReport) error {
	return Text(w, rep, tr.Msgs)
}

// TableRender 摘要表格
type TableRender struct{}

func (tr *TableRender) Write(w io.Writer, rep *coverlab.RunReport) error {
	_, err := io.WriteString(w, Table(rep))
	return err
}

// JsonRender JSON
type JsonRender struct{}

func (jr *JsonRender) Write(w io.Writer, rep *coverlab.RunReport) error {
	return json.NewEncoder(w).Encode(rep)
}

// YAMLRender YAML
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, rep *coverlab.RunReport) error {
	return corefmt.WriteYAML(w, rep)
}

// Formats 支援的輸出格式名稱
var Formats = []string{"text", "table", "json", "yaml"}

// ByFormat 依名稱取得 Render；msgs 只有 text 會用到，nil 時用義大利文。
func ByFormat(name string, msgs *Messages) (Render, error) {
	if msgs == nil {
		msgs = Italian
	}
	switch strings.ToLower(name) {
	case "", "text":
		return &TextRender{Msgs: msgs}, nil
	case "table":
		return &TableRender{}, nil
	case "json":
		return &JsonRender{}, nil
	case "yaml", "yml":
		return &YAMLRender{}, nil
	}
	return nil, errs.Invalid("format", "unknown format %q, want one of %v", name, Formats)
}

// Text 輸出文字報告。
//
// 每個位置一行 "<軌跡> <注>"；只有一個系列時附上開出號碼與其屬性。
// 首次失敗以 1 起算。
func Text(w io.Writer, rep *coverlab.RunReport, msgs *Messages) error {
	if msgs == nil {
		msgs = Italian
	}
	bw := bufio.NewWriter(w)
	for i, row := range rep.Positions {
		bw.WriteString(row.Trace)
		bw.WriteByte(' ')
		bw.WriteString(row.Bet.String())
		if rep.SeriesCount == 1 && i < len(rep.ExtractedNumbers) {
			n := rep.ExtractedNumbers[i]
			bw.WriteString(msgs.sprintf(keyExtracted, n, msgs.Pocket(n)))
		}
		bw.WriteByte('\n')
	}

	bw.WriteString("\n" + msgs.sprintf(keyAverage, msgs.average(rep.AverageMatchRate)))
	if ff := rep.FirstFailure; ff != nil {
		bw.WriteString("\n" + msgs.sprintf(keyFirstFailure, ff.Position+1, ff.Series+1))
	} else {
		bw.WriteString("\n" + msgs.sprintf(keyNoFailure))
	}

	bw.WriteString("\n\n" + msgs.sprintf(keyPerSeries) + "\n")
	for i, v := range rep.ColumnProfits {
		bw.WriteString(msgs.sprintf(keySeries, i+1, msgs.Money(v)) + "\n")
	}
	bw.WriteString("\n" + msgs.sprintf(keyTotal, msgs.Money(rep.TotalProfitLoss)))
	if rep.Bounded != nil {
		bw.WriteString("\n" + msgs.sprintf(keyBounded, rep.AttemptLimit, msgs.Money(*rep.Bounded)))
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// Table 以框線表格輸出一次執行的摘要。
func Table(rep *coverlab.RunReport) string {
	p := corefmt.Printer()
	first := "-"
	if ff := rep.FirstFailure; ff != nil {
		first = p.Sprintf("position %d / series %d", ff.Position+1, ff.Series+1)
	}
	bounded := "-"
	if rep.Bounded != nil {
		bounded = p.Sprintf("%d (limit %d)", *rep.Bounded, rep.AttemptLimit)
	}
	msg := map[string]string{
		"Positions":     p.Sprintf("%d", len(rep.Positions)),
		"Series":        p.Sprintf("%d", rep.SeriesCount),
		"Retry":         p.Sprintf("%d", rep.RetryBudget),
		"Bet Unit":      p.Sprintf("%d", rep.BetUnit),
		"Total P/L":     p.Sprintf("%d", rep.TotalProfitLoss),
		"Matches":       p.Sprintf("%d", rep.TotalMatches),
		"Match Rate":    p.Sprintf("%.3f", rep.AverageMatchRate),
		"Exhausted":     p.Sprintf("%d", rep.Exhausted),
		"First Failure": first,
		"Bounded P/L":   bounded,
	}
	keys := []string{"Positions", "Series", "Retry", "Bet Unit", "Total P/L", "Matches", "Match Rate", "Exhausted", "First Failure", "Bounded P/L"}
	return corefmt.Table("Cover the Table", keys, msg)
}
