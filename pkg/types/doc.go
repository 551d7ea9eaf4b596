// Package types defines the data model shared by the merger, the rule
// resolver and the orchestrator: transpiler fragments and their steps,
// resolved config items, bundler rules and loader specs, the global styles
// union and the immutable per-build BuildContext.
//
// Values in this package carry no behaviour beyond parsing and exporting
// themselves; every decision about ordering, de-duplication or rule
// composition lives in the packages that consume them.
package types
