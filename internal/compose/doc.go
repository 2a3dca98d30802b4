// Package compose turns an invocation into a BuildConfig.
//
// A composition walks a fixed sequence of stages:
//
//	Start → ModeResolved → BaseLoaded → OverlayAssembled → Merged → Final
//
// The mode is resolved once from the invocation and the environment
// snapshot. The base configuration is loaded and rendered into the
// mode-independent fragment. The mode overlay carries the entry list,
// output naming, the asset rules and the mode-only plugins. The two are
// merged with fragment.Merge and the result is fingerprinted. Any fault
// aborts the walk; there is no partial BuildConfig.
package compose
