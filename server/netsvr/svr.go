package netsvr

import (
	"net/http"

	"github.com/zintix-labs/floatrand/server/app"
)

// NetSvr 封裝「路由行為 + 服務啟停」。
//   - 只交給最外層組裝者，其他層只面向 NetRouter。
//   - 實作了 app.Component，可直接交給 app.App 管理生命週期。
//   - 目前以 net/http + chi 實作；換框架只需提供相容 net/http handler 的新 adapter。
type NetSvr interface {
	NetRouter
	app.Component
}

// NetRouter 純路由行為。Group 回呼只拿到 NetRouter，看不到 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
