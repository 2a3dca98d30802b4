// Package pipeline assembles the ordered transformation chain for each asset
// class. It never runs a transformation; it only decides which named steps
// the external build executor applies to which files, in which order, under
// which mode.
//
// There are four asset classes, each owning a fixed set of extensions:
//
//	module source  .elm .js
//	stylesheet     .sass .scss .css
//	template       .html
//	static binary  .png .svg .jpg .jpeg .gif .eot .ttf .woff .woff2
//
// Built-in rules cover every extension of every class. Extra rules may be
// declared in the base configuration. Each extension is handled by the rule
// with the longest extension it ends in, and a tie is an AmbiguousRuleFault.
// A rule that wins a compound extension such as ".module.scss" takes only
// those files; the built-in rule keeps the rest of the class.
package pipeline
