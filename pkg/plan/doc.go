// Package plan implements the declaration pass of a planner build: a
// [Builder] records the ordered pages, navigation groups and outline
// entries a document definition declares, without rendering anything.
//
// # Overview
//
// A planner definition is ordinary Go code running against a Builder:
//
//	b := plan.NewBuilder()
//	b.Page("cover")
//	b.Group("months", plan.GroupOptions{Cycle: true}, func() {
//		for _, m := range calendar.Months(2026) {
//			b.Page("monthly", plan.WithParam("month", m), plan.WithOutline())
//		}
//	})
//
// Each [Builder.Page] call appends a [PageDeclaration] to the master list;
// inside a [Builder.Group] block it also joins that group, and inside a
// [Builder.OutlineSection] block its implied outline entry nests under the
// section. The declare pass is single-threaded and runs exactly once per
// build; the link registry is frozen from the completed lists before any
// page renders.
//
// # Destination Keys
//
// Every page has a stable destination key: the explicit ID when given, else
// the page type plus a deterministic serialization of its sorted parameters
// (for example "weekly:week=14"). Cross-page links and outline entries
// address pages by these keys.
//
// # Parameter Values
//
// Page parameters carry either plain scalars or calendar value objects.
// They are modeled as the closed [Value] union ([Plain], [WeekRef],
// [MonthRef]) so the single context-merge point in the build orchestrator
// can match them exhaustively instead of reflecting on arbitrary types.
package plan
