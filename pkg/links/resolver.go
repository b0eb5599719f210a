package links

import (
	"github.com/planweave/planweave/pkg/plan"
)

// Resolver answers link queries relative to one page. The build
// orchestrator creates one per page render and hands it to the page's
// content builder.
type Resolver struct {
	reg     *Registry
	current DestinationInfo
}

// ResolverFor returns a resolver scoped to the page registered under key.
func (r *Registry) ResolverFor(key string) (*Resolver, bool) {
	info, ok := r.Lookup(key)
	if !ok {
		return nil, false
	}
	return &Resolver{reg: r, current: info}, true
}

// Current returns the page this resolver is scoped to.
func (r *Resolver) Current() DestinationInfo {
	return r.current
}

// Resolve passes a destination query through to the registry.
func (r *Resolver) Resolve(pageType string, params plan.Params) (DestinationInfo, bool) {
	return r.reg.Resolve(pageType, params)
}

// Lookup passes an exact-key query through to the registry.
func (r *Resolver) Lookup(key string) (DestinationInfo, bool) {
	return r.reg.Lookup(key)
}

// WeekOffset resolves the page of the same type whose week param is the
// current page's week number plus delta. Misses at the year's boundaries
// rather than wrapping: week zero and week N+1 are never registered.
func (r *Resolver) WeekOffset(delta int) (DestinationInfo, bool) {
	week, ok := r.current.Params["week"]
	if !ok {
		return DestinationInfo{}, false
	}
	n, ok := plan.NumberOf(week)
	if !ok {
		return DestinationInfo{}, false
	}
	return r.reg.Resolve(r.current.PageType, plan.Params{"week": plan.Val(n + delta)})
}

// PrevWeek resolves the previous week's page, missing on the first week.
func (r *Resolver) PrevWeek() (DestinationInfo, bool) {
	return r.WeekOffset(-1)
}

// NextWeek resolves the next week's page, missing on the last week.
func (r *Resolver) NextWeek() (DestinationInfo, bool) {
	return r.WeekOffset(1)
}

// MonthOffset resolves the page of the same type whose month param is the
// current page's month number plus delta, missing past either end of the
// year.
func (r *Resolver) MonthOffset(delta int) (DestinationInfo, bool) {
	month, ok := r.current.Params["month"]
	if !ok {
		return DestinationInfo{}, false
	}
	n, ok := plan.NumberOf(month)
	if !ok {
		return DestinationInfo{}, false
	}
	return r.reg.Resolve(r.current.PageType, plan.Params{"month": plan.Val(n + delta)})
}

// NextInCycle advances from the current page within the named group,
// wrapping past the end of the group's fixed order.
func (r *Resolver) NextInCycle(groupName string) (DestinationInfo, bool) {
	return r.reg.NextInCycle(groupName, r.current.Key)
}

// Group passes a group-membership query through to the registry. Page
// builders use it to draw one tab per member.
func (r *Resolver) Group(name string) (keys []string, cycle bool, ok bool) {
	return r.reg.Group(name)
}
