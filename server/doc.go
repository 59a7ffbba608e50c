// Package server runs a small Gin echo server, plain HTTP and h2c on one
// port, that reflects requests back as JSON. `fetchkit serve-echo` starts
// it and httpclienttest mounts the same routes on an httptest server.
package server
