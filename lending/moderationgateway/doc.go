// Package moderationgateway is the administrator facing surface of the loan lifecycle.
//
// Every call checks the administrator capability of the actor before anything is read or written.
package moderationgateway
