package netsvr

import (
	"net/http"

	"github.com/zintix-labs/coverlab/server/app"
)

// NetSvr 路由 + 啟停；只交給最外層組裝使用，交給 app.App 管理生命週期。
type NetSvr interface {
	NetRouter
	app.Component
	Handler() http.Handler
}

// NetRouter 純路由行為；handler 與子模組只拿得到這一層，碰不到 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
