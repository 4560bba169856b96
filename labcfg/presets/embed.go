package presets

import (
	"embed"
)

// FS 內嵌的預設設定與範例下注序列
//
//go:embed *.yaml *.txt
var FS embed.FS
