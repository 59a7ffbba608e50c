package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// ResolveURL joins base and path and appends params as a query string.
//
// A path starting with http:// or https:// (any case) ignores base. Otherwise
// exactly one slash separates the two. Nil params are dropped, and when no
// param survives no "?" is added.
func ResolveURL(base, path string, params Params) string {
	joined := path
	if !hasScheme(path) {
		joined = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	}

	query := encodeParams(params)
	if query == "" {
		return joined
	}
	if strings.Contains(joined, "?") {
		return joined + "&" + query
	}
	return joined + "?" + query
}

func hasScheme(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// encodeParams renders params sorted by key.
func encodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, raw := range params {
		for _, v := range paramValues(raw) {
			values.Add(key, v)
		}
	}
	return values.Encode()
}

func paramValues(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case fmt.Stringer:
		if isNil(raw) {
			return nil
		}
		return []string{v.String()}
	}

	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, paramValues(rv.Index(i).Interface())...)
		}
		return out
	}
	return []string{fmt.Sprint(rv.Interface())}
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
