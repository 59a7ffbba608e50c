// Package component defines the lifecycle interface shared by fetchkit's
// long-lived pieces and a Registry that starts them in order and stops
// them in reverse.
package component
