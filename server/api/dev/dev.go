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


// Package dev 提供瀏覽器用的實驗面板：編輯下注序列、送出單次或批次模擬。
//
// 面板只是 /v1/run 與 /v1/batch 的前端，本身不做任何模擬。
package dev

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/coverlab/labcfg"
	"github.com/zintix-labs/coverlab/report"
	"github.com/zintix-labs/coverlab/sdk/core"
	"github.com/zintix-labs/coverlab/server/netsvr"
	"github.com/zintix-labs/coverlab/server/svrcfg"
)

// Meta 面板初始化所需資料
type Meta struct {
	BetAmounts   []int    `json:"bet_amounts"`
	SampleBets   []string `json:"sample_bets"`
	Langs        []string `json:"langs"`
	RNGs         []string `json:"rngs"`
	MaxSeries    int      `json:"max_series"`
	MaxPositions int      `json:"max_positions"`
	MaxRuns      int      `json:"max_runs"`
}

// Register 掛載 /dev、/dev/meta 與 /favicon.svg。
func Register(svr netsvr.NetRouter, cfg *svrcfg.SvrCfg) {
	svr.Get("/dev", devPage)
	svr.Get("/favicon.svg", favicon)
	svr.Get("/dev/meta", devMeta(cfg))
}

func devMeta(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	sample := labcfg.SampleBets()
	lines := make([]string, len(sample))
	for i, b := range sample {
		lines[i] = b.String()
	}
	meta := Meta{
		BetAmounts:   labcfg.BetAmounts,
		SampleBets:   lines,
		Langs:        []string{report.Italian.Tag.String(), report.English.Tag.String()},
		RNGs:         []string{string(core.KindPCG64), string(core.KindPCG32)},
		MaxSeries:    cfg.MaxSeries,
		MaxPositions: cfg.MaxPositions,
		MaxRuns:      cfg.MaxRuns,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(meta)
	}
}

func devPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(devPageHTML))
}

func favicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(faviconSVG))
}

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><circle cx="16" cy="16" r="15" fill="#14532d"/><circle cx="16" cy="16" r="9" fill="#b91c1c"/><circle cx="16" cy="16" r="3" fill="#f8fafc"/></svg>`

// devPageHTML 單頁面板。
//   - Run  ：POST /v1/run，帶 lang 取得文字報告；回應的 state 可勾選「接續輪盤」再送一次。
//   - Batch：POST /v1/batch，只顯示統計摘要。
const devPageHTML = `<!doctype html>
<html lang="it">
<head>
  <meta charset="utf-8" />
  <link rel="icon" type="image/svg+xml" href="/favicon.svg" />
  <title>Coverlab Dev</title>
  <style>
    body { font-family: -apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif; background:#0f172a; color:#e2e8f0; margin:0; }
    .wrap { max-width: 1080px; margin: 24px auto; padding: 16px 20px; background:#111827; border:1px solid #1f2937; border-radius:12px; }
    h1 { margin: 0 0 16px; font-size: 22px; }
    .cols { display:grid; grid-template-columns: 220px 1fr; gap:16px; }
    .grid { display:grid; grid-template-columns: repeat(auto-fit, minmax(140px,1fr)); gap:10px; margin-bottom:12px; }
    label { display:flex; flex-direction:column; gap:6px; font-size: 13px; color:#cbd5e1; }
    input, select, textarea { background:#0b1224; color:#e2e8f0; border:1px solid #1f2738; border-radius:8px; padding:8px 10px; font-size:14px; }
    textarea { font-family: ui-monospace,Menlo,monospace; min-height: 420px; resize: vertical; }
    pre { background:#0b1224; border:1px solid #1f2738; border-radius:8px; padding:12px; white-space:pre; overflow:auto; min-height: 420px; margin:0; }
    .actions { display:flex; gap:10px; align-items:center; justify-content:flex-end; margin: 8px 0 14px; }
    button { cursor:pointer; border:none; border-radius:10px; padding:10px 14px; font-weight:600; }
    #btn-run { background:#38bdf8; color:#0b1224; }
    #btn-batch { background:#22c55e; color:#0b1224; }
    .muted { color:#94a3b8; font-size:12px; }
  </style>
</head>
<body>
<div class="wrap">
  <h1>Cover the Table</h1>
  <div class="grid">
    <label>Series <input id="series" type="number" min="1" value="1" /></label>
    <label>Retry <select id="retry"><option>0</option><option>1</option><option>2</option><option>3</option></select></label>
    <label>Bet amount <select id="amount"></select></label>
    <label>Attempt limit <input id="limit" type="number" min="0" value="0" /></label>
    <label>Lang <select id="lang"></select></label>
    <label>RNG <select id="rng"></select></label>
    <label>Seed <input id="seed" placeholder="auto" /></label>
    <label>Runs (batch) <input id="runs" type="number" min="1" value="1000" /></label>
  </div>
  <div class="actions">
    <label class="muted"><input id="resume" type="checkbox" /> continue wheel</label>
    <button id="btn-run">Run</button>
    <button id="btn-batch">Batch</button>
  </div>
  <div class="cols">
    <textarea id="bets" spellcheck="false"></textarea>
    <pre id="out"></pre>
  </div>
  <p class="muted" id="meta"></p>
</div>
<script>
const $ = (id) => document.getElementById(id);
let lastState = "";

function payload() {
  const body = {
    bets_text: $("bets").value,
    series: Number($("series").value),
    retry: Number($("retry").value),
    bet_amount: Number($("amount").value),
    attempt_limit: Number($("limit").value),
    lang: $("lang").value,
    rng: $("rng").value,
  };
  const seed = $("seed").value.trim();
  if ($("resume").checked && lastState) {
    body.state = lastState;
  } else if (seed !== "") {
    body.seed = Number(seed);
  }
  return body;
}

async function post(path, body) {
  const res = await fetch(path, { method: "POST", headers: { "Content-Type": "application/json" }, body: JSON.stringify(body) });
  const data = await res.json();
  if (!res.ok) { throw new Error(data.error || res.statusText); }
  return data;
}

$("btn-run").onclick = async () => {
  try {
    const data = await post("/v1/run", payload());
    lastState = data.state || "";
    if (data.seed !== undefined) { $("seed").placeholder = String(data.seed); }
    $("out").textContent = data.text;
  } catch (e) { $("out").textContent = String(e); }
};

$("btn-batch").onclick = async () => {
  const body = payload();
  delete body.state;
  body.runs = Number($("runs").value);
  body.workers = 4;
  try {
    const data = await post("/v1/batch", body);
    $("out").textContent = JSON.stringify(data.stats, null, 2) + "\n\nused: " + data.used_ms + " ms, seed " + data.seed;
  } catch (e) { $("out").textContent = String(e); }
};

async function loadMeta() {
  const meta = await (await fetch("/dev/meta")).json();
  for (const a of meta.bet_amounts) { $("amount").add(new Option(a + " €", a)); }
  for (const l of meta.langs) { $("lang").add(new Option(l, l)); }
  for (const r of meta.rngs) { $("rng").add(new Option(r, r)); }
  $("bets").value = meta.sample_bets.join("\n");
  $("meta").textContent = "max series " + meta.max_series + ", max positions " + meta.max_positions + ", max runs " + meta.max_runs;
}
loadMeta();
</script>
</body>
</html>`
