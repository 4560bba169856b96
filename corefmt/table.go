package corefmt

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Printer 回傳帶千分位的輸出器。
func Printer() *message.Printer {
	return message.NewPrinter(lang)
}

// Table 以 key 順序輸出兩欄對齊的框線表格；寬度以 runewidth 計算，中文/全形字也能對齊。
func Table(title string, keys []string, msg map[string]string) string {
	p := Printer()
	maxKeyLen := 0
	maxValLen := 0
	for _, k := range keys {
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(k))
		maxValLen = max(maxValLen, runewidth.StringWidth(msg[k]))
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

// Duration 以「用時 + 每秒系列數」的形式描述一次批次執行。
func Duration(d time.Duration, series int) string {
	p := Printer()
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(series) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nsps : %d series/sec\n", sec, sps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nsps : %d series/sec\n", m, s, sps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nsps : %d series/sec\n", h, m, s, sps)
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
