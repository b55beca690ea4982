// Package lifecycle composes the lifecycle command handlers and read-side query handlers into one service.
//
// Every handler is decorated with the observable wrappers, so the gateways only talk to Service and Views
// and never need to know which collectors are configured. All decisions of one call share the same now,
// read once from the configured clock.
package lifecycle
