// Package notificationfeed implements the Notification Feed query use case.
//
// The feed shows a borrower the most recent answers to their loan requests.
// By default it is derived from the loans themselves: every loan that was responded to contributes
// one item, newest response first. If the notification outbox is available, the feed reads the
// stored notifications instead, which also contain extensions and returns.
package notificationfeed
