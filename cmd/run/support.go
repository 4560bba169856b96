package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"math"
	"math/big"
	"os"
	"os/signal"
	"runtime"

	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/labcfg"
	"github.com/zintix-labs/coverlab/report"
	"github.com/zintix-labs/coverlab/stats"
	"github.com/zintix-labs/coverlab/wheel"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	cfgPath   string
	preset    string
	betsPath  string
	stdin     bool
	series    int
	retry     int
	unit      int
	amount    int
	limit     int
	seed      int64
	lang      string
	rng       string
	format    string
	runs      int
	worker    int
	pprofmode string

	set map[string]bool // 命令列上實際出現的 flag
}

func bindVar() *config {
	cfg := &config{}
	flag.StringVar(&cfg.cfgPath, "cfg", "", "run setting file (yaml or json)")
	flag.StringVar(&cfg.preset, "preset", "default", "embedded run setting when -cfg is empty: default|batch")
	flag.StringVar(&cfg.betsPath, "bets", "serie.txt", "bets file, one bet per line ('a b' or ignora); the embedded sample is used when the default file is missing")
	flag.BoolVar(&cfg.stdin, "stdin", false, "read bets from stdin; saved to -bets when they differ")
	flag.IntVar(&cfg.series, "series", 1, "series per run")
	flag.IntVar(&cfg.retry, "retry", 0, "failures tolerated after the first one")
	flag.IntVar(&cfg.unit, "unit", 1, "stake per covered number")
	flag.IntVar(&cfg.amount, "amount", 35, "table stake, multiple of 35 (35, 70, 105, 3500, 5250, 7000)")
	flag.IntVar(&cfg.limit, "limit", 0, "attempt limit for bounded profit/loss, single series only (0 = off)")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for the wheel (< 0 = random)")
	flag.StringVar(&cfg.lang, "lang", "", "report language: it|en")
	flag.StringVar(&cfg.rng, "rng", "", "prng: pcg64|pcg32")
	flag.StringVar(&cfg.format, "format", "text", "output: text|table|json|yaml")
	flag.IntVar(&cfg.runs, "runs", 0, "independent runs; > 1 prints batch statistics")
	flag.IntVar(&cfg.worker, "worker", runtime.NumCPU(), "number of workers for batch runs")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.Parse()

	cfg.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })
	return cfg
}

// setting 讀取設定檔（或內嵌預設），再以命令列 flag 覆寫。
func (cfg *config) setting() (*labcfg.RunSetting, error) {
	var (
		rs  *labcfg.RunSetting
		err error
	)
	if cfg.cfgPath != "" {
		rs, err = labcfg.Load(cfg.cfgPath)
	} else {
		rs, err = labcfg.Preset(cfg.preset)
	}
	if err != nil {
		return nil, err
	}
	if cfg.set["series"] {
		rs.Series = cfg.series
	}
	if cfg.set["retry"] {
		rs.Retry = cfg.retry
	}
	if cfg.set["unit"] || cfg.set["amount"] {
		var unit, amount *int
		if cfg.set["unit"] {
			unit = &cfg.unit
		}
		if cfg.set["amount"] {
			amount = &cfg.amount
		}
		if err := rs.ApplyStake(unit, amount); err != nil {
			return nil, err
		}
	}
	if cfg.set["limit"] {
		rs.AttemptLimit = cfg.limit
	}
	if cfg.set["seed"] && cfg.seed >= 0 {
		rs.Seed = &cfg.seed
	}
	if cfg.set["lang"] {
		rs.Lang = cfg.lang
	}
	if cfg.set["rng"] {
		rs.RNG = cfg.rng
	}
	if cfg.set["runs"] {
		rs.Runs = cfg.runs
	}
	if cfg.set["worker"] || rs.Workers == 0 {
		rs.Workers = cfg.worker
	}
	switch {
	case cfg.set["bets"]:
		rs.BetsFile = cfg.betsPath
		rs.Bets = nil
	case rs.BetsFile == "" && len(rs.Bets) == 0 && (cfg.stdin || fileExists(cfg.betsPath)):
		rs.BetsFile = cfg.betsPath
	}
	if cfg.set["limit"] && rs.Series != 1 && cfg.limit != 0 {
		fmt.Fprintln(os.Stderr, "attempt limit is only used with a single series; ignored")
	}
	if err := rs.Normalize(); err != nil {
		return nil, err
	}
	return rs, nil
}

// sequence 取得下注序列；-stdin 時若與 -bets 檔案內容不同就寫回檔案。
func (cfg *config) sequence(rs *labcfg.RunSetting, stdin io.Reader) (bet.Sequence, error) {
	if !cfg.stdin {
		return rs.Sequence()
	}
	edited, err := bet.Read(stdin)
	if err != nil {
		return nil, err
	}
	if rs.BetsFile == "" {
		return edited, nil
	}
	saved, err := bet.Load(rs.BetsFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if !bet.Equal(saved, edited) {
		if err := bet.Save(rs.BetsFile, edited); err != nil {
			return nil, err
		}
	}
	return edited, nil
}

// execute 解析設定後分支到單次執行或批次模擬
func (cfg *config) execute() error {
	rs, err := cfg.setting()
	if err != nil {
		return err
	}
	seq, err := cfg.sequence(rs, os.Stdin)
	if err != nil {
		return err
	}
	seed, err := resolveSeed(rs.Seed)
	if err != nil {
		return err
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	if rs.Runs <= 1 {
		p.Fprintf(os.Stderr, "%s[POSITIONS:%d] [SERIES:%d] [RETRY:%d] [UNIT:%d] [SEED:%d]%s\n",
			green, seq.Len(), rs.Series, rs.Retry, rs.BetUnit, seed, reset)
		rep, err := coverlab.Run(rs.ToConfig(), seq, wheel.NewWith(rs.Factory(), seed))
		if err != nil {
			return err
		}
		r, err := report.ByFormat(cfg.format, report.MessagesForName(rs.Lang))
		if err != nil {
			return err
		}
		return r.Write(os.Stdout, rep)
	}

	p.Fprintf(os.Stderr, "%s[WORKERS:%d] [RUNS:%d] [POSITIONS:%d] [SERIES:%d] [RETRY:%d] [UNIT:%d] [SEED:%d]%s\n",
		green, rs.Workers, rs.Runs, seq.Len(), rs.Series, rs.Retry, rs.BetUnit, seed, reset)
	b, err := coverlab.NewBatchWithSeed(rs.ToConfig(), seq, rs.Factory(), seed)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	st, used, err := b.Sim(ctx, rs.Runs, rs.Workers, true)
	if err != nil {
		return err
	}
	switch cfg.format {
	case "json":
		return st.WriteWith(os.Stdout, &stats.JsonBatchReportRender{})
	case "yaml", "yml":
		return st.WriteWith(os.Stdout, &stats.YAMLBatchReportRender{})
	case "text", "table", "":
		st.StdOut(used)
		return nil
	}
	return errs.Invalid("format", "unknown format %q", cfg.format)
}

// resolveSeed nil 時以 crypto/rand 產生 [0, MaxInt64) 的種子
func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "seed generate failed")
	}
	return rnd.Int64(), nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
