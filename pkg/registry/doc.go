// Package registry keeps named build components. Components records which
// preprocessing commands are in use and which source files each one claims,
// so style rules can keep those files out of each other's loader chains.
package registry
