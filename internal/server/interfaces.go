package server

// Server defines the lifecycle contract of the notification listener.
//
// RunServer blocks until the server stops; Shutdown gracefully stops it and
// frees associated resources.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
