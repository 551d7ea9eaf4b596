// Package css builds the bundler rules for stylesheet categories.
//
// Every rule runs the same chain: a style-handling loader that either
// injects styles at runtime or extracts them to files, css-loader,
// postcss-loader, the category's own preprocessor loader and, for
// categories with global resources, sass-resources-loader. Sources that a
// preprocessing command compiles standalone are excluded from the rules of
// the other categories.
package css
