package types

// LoaderSpec is one stage of a rule's processing chain. Options are
// forwarded to the bundler untouched.
type LoaderSpec struct {
	Loader  string
	Options map[string]interface{}
}

// Export renders the loader spec in the bundler's {loader, options} form
func (l LoaderSpec) Export() map[string]interface{} {
	out := map[string]interface{}{"loader": l.Loader}
	if l.Options != nil {
		out["options"] = l.Options
	}
	return out
}

// Rule is the processing chain applied to one file category
type Rule struct {
	// Category names the file category the rule was built for
	Category string
	// Match is an ECMAScript regular expression source over the file path
	Match   string
	Exclude []string
	Steps   []LoaderSpec
}

// Loaders returns the loader ids of the rule in order
func (r Rule) Loaders() []string {
	ids := make([]string, len(r.Steps))
	for i, step := range r.Steps {
		ids[i] = step.Loader
	}
	return ids
}

// Export renders the rule in the bundler's {test, exclude, use} form
func (r Rule) Export() map[string]interface{} {
	exclude := make([]interface{}, len(r.Exclude))
	for i, p := range r.Exclude {
		exclude[i] = p
	}
	use := make([]interface{}, len(r.Steps))
	for i, step := range r.Steps {
		use[i] = step.Export()
	}
	return map[string]interface{}{
		"test":    r.Match,
		"exclude": exclude,
		"use":     use,
	}
}

// PluginSpec is an opaque plugin descriptor handed to the bundler or to postcss
type PluginSpec struct {
	Name    string
	Options map[string]interface{}
}

// Export renders the plugin descriptor
func (p PluginSpec) Export() map[string]interface{} {
	out := map[string]interface{}{"name": p.Name}
	if p.Options != nil {
		out["options"] = p.Options
	}
	return out
}
