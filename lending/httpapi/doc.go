// Package httpapi exposes the request and moderation gateways over HTTP with gin.
//
// Authentication happens upstream. The authenticating proxy forwards the caller as the X-User-ID
// and X-User-Role headers; a role of "admin" grants the administrator capability.
// Failures are answered as {"error":{"code":"...","message":"..."}}.
package httpapi
