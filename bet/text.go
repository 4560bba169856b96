package bet

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zintix-labs/coverlab/errs"
)

// ParseLine 解析一行 "<int> <int>"。
// 欄位數不是 2、不是整數、或超出 0..36 的行一律轉成 Ignore，不回報錯誤。
func ParseLine(line string) Bet {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Ignore
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return Ignore
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return Ignore
	}
	if !inPocket(a) || !inPocket(b) {
		return Ignore
	}
	return New(a, b)
}

// ParseText 以換行切分文字，每行一注。
// 結尾換行不會產生多餘的忽略位置；中間的空行會。
func ParseText(text string) Sequence {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Sequence{}
	}
	lines := strings.Split(text, "\n")
	seq := make(Sequence, 0, len(lines))
	for _, l := range lines {
		seq = append(seq, ParseLine(l))
	}
	return seq
}

// Read 從 reader 逐行讀取下注序列。
func Read(r io.Reader) (Sequence, error) {
	seq := make(Sequence, 0, 64)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		seq = append(seq, ParseLine(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(err, "read bets failed")
	}
	return seq, nil
}

// Write 每注一行寫出。
func Write(w io.Writer, seq Sequence) error {
	bw := bufio.NewWriter(w)
	for _, b := range seq {
		if _, err := bw.WriteString(b.String() + "\n"); err != nil {
			return errs.Wrap(err, "write bets failed")
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.Wrap(err, "write bets failed")
	}
	return nil
}

// Load 讀取下注檔。
func Load(path string) (Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, "open bets file failed: "+path)
	}
	defer f.Close()
	return Read(f)
}

// Save 覆寫下注檔。
func Save(path string, seq Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create bets file failed: "+path)
	}
	if err := Write(f, seq); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, "close bets file failed: "+path)
	}
	return nil
}
