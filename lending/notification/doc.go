// Package notification turns committed loan transitions into notifications for the borrower.
//
// An Event describes one transition: which loan, whose, the resulting status, and when. Render produces
// the title and message shown to the borrower. Emitters deliver events: to the structured log, to the
// PostgreSQL outbox, to per-user Redis channels, or to several of those at once with FanOut.
//
// Delivery, formatting on the client, and read/unread tracking belong to the consumers.
// An emitter failure never undoes the transition it reports.
package notification
