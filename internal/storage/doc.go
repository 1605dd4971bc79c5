// Package storage defines the persistence interfaces for campaign saves.
//
// A save holds independently encoded sections (recruitment market, turnover
// tracker, roster) that must be written together: a crash between rolling
// turnover and paying it must never leave one section newer than another.
// The SQLite implementation lives in the sqlite subpackage.
//
// # Error Types
//
//   - ErrNotFound: Indicates a requested save is missing.
package storage
