// Package catalog persists sites and their scenes in SQLite.
//
// A site is a publisher with a UUID, descriptive metadata, and an optional
// home directory on local storage; its scenes carry the title, date, and
// duration used for matching, plus the local path once a file is confirmed.
//
// Store wraps database/sql with the modernc.org/sqlite driver, retries
// SQLITE_BUSY with bounded backoff, and exposes the read side needed by the
// matching engine (EntriesForSite, SiteHomeDirectory).
package catalog
