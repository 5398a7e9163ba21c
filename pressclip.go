// Package pressclip turns news-article URLs into normalized clipping records
// for a daily press digest. It classifies a URL, runs an ordered chain of
// extraction strategies (static fetch, generic article parsing, browser
// automation with per-site heuristics), and always returns a best-effort
// headline.
//
// This package contains domain types, interfaces and pure text helpers
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/, sqlite/,
// goquery/).
package pressclip
