package index

import (
	"io"
	"net/http"
)

const indexText = `coverlab server

GET  /v1/run        single run (query)
POST /v1/run        single run (json)
POST /v1/batch      batch summary
GET  /v1/pocket/{n} pocket characteristics
GET  /dev           browser panel
`

// IndexHandlerFn 健康檢查與路由說明
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, indexText)
}
