// Package allloans implements the All Loans query use case for administrators.
//
// It lists loans across all users, newest first, optionally narrowed by status and to overdue loans only.
// One point in time is used for the whole page, so the overdue filter and the per-row overdue
// labels can never disagree.
package allloans
