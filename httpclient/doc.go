// Package httpclient is an interceptor-driven HTTP client.
//
// A Client holds default request settings and two interceptor chains.
// Every call merges the defaults with per-call options, runs the request
// chain, resolves the URL, sends the request through a Transport, and wraps
// the result in a Response envelope. JSON bodies are decoded leniently:
// non-JSON text is kept as a string. Non-2xx responses become a
// *StatusError and go through the response chain's Rejected handlers, any of
// which may recover by returning a Response.
//
//	client := httpclient.New(httpclient.Defaults{
//	    BaseURL: "https://api.example.com",
//	    Headers: map[string]string{"Accept": "application/json"},
//	})
//	client.Interceptors().Request.Use(interceptors.RequestID("X-Request-ID"), nil)
//
//	resp, err := client.Get(ctx, "/users", httpclient.WithParam("q", "joe"))
//	if se, ok := httpclient.AsStatusError(err); ok {
//	    log.Printf("%d: %s", se.Status(), se.AppError().Message)
//	}
//
// Transport failures (DNS, refused connections) are returned unchanged and
// never reach the interceptors. The client adds no retries or timeouts;
// cancel ctx to abort.
//
// Subpackages:
//
//   - interceptors: ready-made request and response handlers
//   - rest: typed JSON helpers over a Client
//   - httpclienttest: a recording test backend
package httpclient
