// Package links maps declared pages to stable destinations and answers
// the cross-page queries planner content needs: exact lookups, pattern
// matches over page parameters, previous/next-week navigation and cycling
// tab groups.
//
// # Overview
//
// A [Registry] is built once per build, immediately after the declare pass
// completes and before any page renders, so every render-time lookup sees a
// complete, frozen index. Each registered page yields one immutable
// [DestinationInfo] carrying its destination key, 1-based page number, page
// type and a snapshot of its params.
//
// Lookups never fail with errors: a miss is an absent result
// (DestinationInfo, false) that call sites handle, such as the previous-week
// link on the first week of the year.
//
// # Pattern Matching
//
// [Registry.Resolve] with params scans the page type's bucket in
// registration order and returns the first compatible entry. The comparator
// is deliberately permissive: equal values match; a stored week or month
// reference matches a plain integer with the same number; and string forms
// are compared as a last resort when scalars are involved. Distinct
// reference types (a week and a month with the same number) never match.
//
// # Page-Scoped Resolution
//
// [Registry.ResolverFor] wraps the registry for one page, giving content
// builders relative navigation: [Resolver.PrevWeek], [Resolver.NextWeek]
// and [Resolver.NextInCycle] against the page's own key and params.
package links
