// Package security holds the TLS settings used by the fetchkit HTTP
// transport.
//
//	cfg := security.TLSConfig{CAFile: "/etc/ssl/internal-ca.pem", MinVersion: "1.3"}
//	tlsCfg, err := cfg.Build()
package security
