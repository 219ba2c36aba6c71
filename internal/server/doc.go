// Package server runs the notification ingress of syncd over HTTP.
//
// It owns the listener lifecycle: startup, and graceful shutdown bounded by a
// timeout so in-flight notifications can finish their pull.
package server
