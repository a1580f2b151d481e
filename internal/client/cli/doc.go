// Package cli provides the interactive polygame terminal client.
//
// It wires configuration, durable session storage, the backend API client,
// the state stores and the navigation guard, then runs a REPL in which each
// command is a view: it navigates to its route through the guard and renders
// the state the stores expose.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartMetricsServer and runREPL for details.
package cli
