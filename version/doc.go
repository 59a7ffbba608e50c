// Package version exposes build metadata set via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/fetchkit/version.Version=1.0.0" ./cmd/fetchkit
package version
