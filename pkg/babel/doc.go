// Package babel composes the transpiler configuration handed to the
// bundler's babel-loader.
//
// Fragments are merged strictly left to right. Every key other than
// presets and plugins is replaced wholesale by the last fragment that sets
// it. Presets and plugins are concatenated, resolved into config items and
// de-duplicated by resolved file identity, keeping the last occurrence:
//
//	[{presets: [p1, p2]}, {presets: [p2, p3]}]  ->  presets: [p1, p2, p3]
//
// Items whose identity cannot be resolved are never de-duplicated, so
// repeated inline entries accumulate.
package babel
