// Package interceptors holds ready-made handlers for httpclient chains.
//
// Request handlers return a modified copy of the config and never mutate
// the one they receive:
//
//	c := httpclient.New(httpclient.Defaults{BaseURL: "https://app.test/api"})
//	c.Interceptors().Request.Use(interceptors.EndpointGuard(), nil)
//	c.Interceptors().Request.Use(interceptors.APIPath("/api"), nil)
//	c.Interceptors().Request.Use(interceptors.RequestID(""), nil)
//	c.Interceptors().Request.Use(interceptors.Bearer(tokens), nil)
//	c.Interceptors().Response.Use(nil, interceptors.OnStatus(onExpired, 401))
//
// Order matters: handlers run in registration order.
package interceptors
