package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/report"
	"github.com/zintix-labs/coverlab/wheel"
	"golang.org/x/text/language"
)

func run(t *testing.T, cfg coverlab.Config, seq bet.Sequence, spins ...int) *coverlab.RunReport {
	t.Helper()
	src, err := wheel.NewScripted(spins...)
	if err != nil {
		t.Fatalf("scripted: %v", err)
	}
	rep, err := coverlab.Run(cfg, seq, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return rep
}

func TestTextItalianSingleSeries(t *testing.T) {
	rep := run(t, coverlab.Config{SeriesCount: 1, BetUnit: 1}, bet.Sequence{bet.New(1, 2)}, 1)
	var buf bytes.Buffer
	if err := report.Text(&buf, rep, report.Italian); err != nil {
		t.Fatalf("text: %v", err)
	}
	want := ". 1 2, numero estratto: 1 (rosso, dispari, basso)\n" +
		"\nMedia dei punti (ovvero delle vittorie): 1" +
		"\nNon ci sono stati fallimenti nelle serie." +
		"\n\n**Guadagno/Perdita per ciascuna serie**\n" +
		"Serie 1: 1€\n" +
		"\nSomma complessiva: 1€\n"
	if buf.String() != want {
		t.Fatalf("unexpected text:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestTextEnglishFirstFailure(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2), bet.New(3, 4)}
	cfg := coverlab.Config{SeriesCount: 2, RetryBudget: 0, BetUnit: 1, AttemptLimit: 3}
	rep := run(t, cfg, seq, 9, 3, 1, 9)
	var buf bytes.Buffer
	if err := report.Text(&buf, rep, report.English); err != nil {
		t.Fatalf("text: %v", err)
	}
	out := buf.String()
	for _, s := range []string{
		"X. 1 2\n",
		"XX 3 4\n",
		"The first failure occurs after 1 attempts in series 1.",
		"Series 1: €-35.00",
		"Series 2: €-34.00",
		"Overall total: €-69.00",
		"Profit/Loss up to attempt 3: ",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("missing %q in:\n%s", s, out)
		}
	}
	if strings.Contains(out, "drawn number") {
		t.Fatalf("drawn numbers must only be shown for a single series")
	}
}

func TestTextIgnoredAndZero(t *testing.T) {
	seq := bet.Sequence{bet.Ignore, bet.New(5, 6)}
	rep := run(t, coverlab.Config{SeriesCount: 1, BetUnit: 1}, seq, 0, 0)
	var buf bytes.Buffer
	if err := report.Text(&buf, rep, nil); err != nil {
		t.Fatalf("text: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "= ignora, numero estratto: 0 (verde, pari)\n") {
		t.Fatalf("unexpected first line:\n%s", out)
	}
	if !strings.Contains(out, "Il primo fallimento si registra dopo 2 tentativi nella serie 1.") {
		t.Fatalf("first failure should be 1-indexed:\n%s", out)
	}
}

func TestMessagesFor(t *testing.T) {
	cases := map[string]*report.Messages{
		"it":    report.Italian,
		"it-CH": report.Italian,
		"en":    report.English,
		"en-US": report.English,
		"de":    report.Italian,
		"":      report.Italian,
		"???":   report.Italian,
	}
	for name, want := range cases {
		if got := report.MessagesForName(name); got != want {
			t.Fatalf("%q: got %v", name, got.Tag)
		}
	}
	if report.MessagesFor(language.BritishEnglish) != report.English {
		t.Fatalf("en-GB should match english")
	}
}

func TestPocketDescription(t *testing.T) {
	if got := report.English.Pocket(36); got != "red, even, high" {
		t.Fatalf("36: %q", got)
	}
	if got := report.Italian.Pocket(11); got != "nero, dispari, basso" {
		t.Fatalf("11: %q", got)
	}
}

func TestByFormat(t *testing.T) {
	rep := run(t, coverlab.Config{SeriesCount: 1, BetUnit: 2, AttemptLimit: 1}, bet.Sequence{bet.New(1, 2)}, 7)
	for _, f := range report.Formats {
		r, err := report.ByFormat(f, nil)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		var buf bytes.Buffer
		if err := r.Write(&buf, rep); err != nil {
			t.Fatalf("%s write: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s: empty output", f)
		}
	}
	if _, err := report.ByFormat("xml", nil); !errs.IsInvalid(err) {
		t.Fatalf("unknown format should be invalid, got %v", err)
	}
}

func TestJSONShape(t *testing.T) {
	rep := run(t, coverlab.Config{SeriesCount: 1, BetUnit: 1, AttemptLimit: 1}, bet.Sequence{bet.New(1, 2)}, 4)
	var buf bytes.Buffer
	if err := (&report.JsonRender{}).Write(&buf, rep); err != nil {
		t.Fatalf("json: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["total_profit_loss"].(float64) != -35 {
		t.Fatalf("total: %v", m["total_profit_loss"])
	}
	if m["bounded_profit_loss"].(float64) != -35 {
		t.Fatalf("bounded: %v", m["bounded_profit_loss"])
	}
	if _, ok := m["first_failure"]; !ok {
		t.Fatalf("first failure missing")
	}
}

func TestTableContainsTotals(t *testing.T) {
	rep := run(t, coverlab.Config{SeriesCount: 1, BetUnit: 100}, bet.Sequence{bet.New(1, 2)}, 9)
	out := report.Table(rep)
	if !strings.Contains(out, "-3,500") {
		t.Fatalf("expected grouped total in table:\n%s", out)
	}
}
