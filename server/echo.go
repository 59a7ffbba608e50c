package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Echo is a request as the server saw it.
type Echo struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Query   map[string][]string `json:"query,omitempty"`
	Headers map[string]string   `json:"headers"`
	Cookies map[string]string   `json:"cookies,omitempty"`
	Proto   string              `json:"proto"`
	// Body is the raw request body; JSON holds it decoded when it parses.
	Body string `json:"body,omitempty"`
	JSON any    `json:"json,omitempty"`
}

// Header returns a request header by case-insensitive name.
func (e Echo) Header(name string) string {
	return e.Headers[strings.ToLower(name)]
}

// Capture reads the request into an Echo and restores the body so later
// handlers can read it again.
func Capture(c *gin.Context) Echo {
	r := c.Request
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	e := Echo{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: make(map[string]string, len(r.Header)),
		Proto:   r.Proto,
		Body:    string(body),
	}
	if q := r.URL.Query(); len(q) > 0 {
		e.Query = q
	}
	for k, v := range r.Header {
		e.Headers[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	if cookies := r.Cookies(); len(cookies) > 0 {
		e.Cookies = make(map[string]string, len(cookies))
		for _, ck := range cookies {
			e.Cookies[ck.Name] = ck.Value
		}
	}
	if len(body) > 0 {
		var v any
		if json.Unmarshal(body, &v) == nil {
			e.JSON = v
		}
	}
	return e
}

// RegisterEcho installs the echo routes on engine. onRequest, when set,
// sees every request before it is answered.
//
//	/status/:code      responds with that status and {"status","message"}
//	/cookies/set?k=v   sets each query pair as a cookie, then echoes
//	/text              responds with plain text
//	/empty             responds 200 with no body
//	anything else      echoes the request as JSON
func RegisterEcho(engine *gin.Engine, onRequest func(Echo)) {
	if onRequest != nil {
		engine.Use(func(c *gin.Context) {
			onRequest(Capture(c))
			c.Next()
		})
	}

	engine.Any("/status/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 100 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status code"})
			return
		}
		c.JSON(code, gin.H{"status": code, "message": http.StatusText(code)})
	})

	engine.Any("/cookies/set", func(c *gin.Context) {
		for name, values := range c.Request.URL.Query() {
			c.SetCookie(name, values[0], 3600, "/", "", false, true)
		}
		c.JSON(http.StatusOK, Capture(c))
	})

	engine.Any("/text", func(c *gin.Context) {
		c.String(http.StatusOK, "hello from fetchkit")
	})

	engine.Any("/empty", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusOK, Capture(c))
	})
}
