// Package schedcache provides the domain-specific cache namespaces of the
// scheduling backend: computed schedules and parsed scheduling rules.
//
// # Schedule namespace
//
// A schedule result is a pure function of the set of participating
// employees, the set of shifts, and the set of constraint texts, never of
// their submission order. ScheduleCache therefore sorts each component
// before hashing, so set-equality of the inputs implies key-equality.
// Employee ids additionally appear in clear text inside the key, which lets
// InvalidateEmployeeSchedules and InvalidateDateSchedules target entries
// with pattern-based clearing (approximate under the in-process fallback
// store, see the cache package).
//
// # Rule namespace
//
// Parsing a natural-language scheduling rule is expensive, and a given text
// always parses to the same structure. RuleCache keys on a content hash of
// the raw text only and defaults to a 24 hour TTL. InvalidateAll clears the
// namespace wholesale, the intended response to a parser upgrade.
// NewInProcessRuleCache runs without any networked backend and bounds its
// private store, dropping oldest-inserted entries past the cap.
//
// Records cross into this package as plain identifiers and field values;
// no ORM types are accepted or returned.
package schedcache
