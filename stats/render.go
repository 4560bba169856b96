package stats

import (
	"encoding/json"
	"io"

	"github.com/zintix-labs/coverlab/corefmt"
)

// BatchReportRender 定義輸出行為
type BatchReportRender interface {
	Write(w io.Writer, r *BatchReport) error
}

// Json渲染
type JsonBatchReportRender struct{}

func (jr *JsonBatchReportRender) Write(w io.Writer, r *BatchReport) error {
	return json.NewEncoder(w).Encode(r)
}

// YAML渲染
type YAMLBatchReportRender struct{}

func (yr *YAMLBatchReportRender) Write(w io.Writer, r *BatchReport) error {
	return corefmt.WriteYAML(w, r)
}

func (s *BatchReport) WriteWith(w io.Writer, rep BatchReportRender) error {
	return rep.Write(w, s)
}
