// Package http implements the notification ingress of syncd.
//
// The remote store calls it when records change so that the affected scope is
// pulled without waiting for the next periodic pass. Request tracing, access
// logging, response compression and JWT authentication are handled in this
// package before requests are delegated to the sync coordinator.
package http
