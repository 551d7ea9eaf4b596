// Package output renders build configuration for people and tools.
//
// Machine formats (json, yaml, toml) encode the exported result. The
// terminal formats render the rule table with pterm and rule explanations
// with lipgloss; "term" is styled, "text" is plain. Auto picks term on a
// color-capable terminal and text otherwise.
package output
