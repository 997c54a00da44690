// Package common contains shared constants and sentinel errors used across
// Mood-Tracker components.
package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// authenticated requests.
const AccessTokenHeaderName = "Authorization"

// JournalDateLayout is the calendar-day format used for journal_date values
// on the wire and in the database. Reconciliation compares these as plain
// date strings, not timestamp ranges.
const JournalDateLayout = "2006-01-02"
