// Package termspider crawls a set of seed sites, each restricted to its own
// domain, and records which pages contain any of a configured set of search
// terms, with snippets for human review.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package termspider
