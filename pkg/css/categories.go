package css

import (
	"github.com/arthur-debert/mixconf/pkg/types"
)

// Category is a stylesheet file type with its preprocessing command
type Category struct {
	// Type is the file type, also the key into global styles
	Type string
	// Command is the preprocessing command owning the type. sass and scss
	// share the sass command.
	Command string
	// Match is the ECMAScript source of the file pattern
	Match string
	// Loader is the preprocessor loader, nil for plain css
	Loader *types.LoaderSpec
}

// CSSCommand never excludes other commands' sources
const CSSCommand = "css"

func sassOptions(indented bool) map[string]interface{} {
	opts := map[string]interface{}{
		"precision":   8,
		"outputStyle": "expanded",
	}
	if indented {
		opts["indentedSyntax"] = true
	}
	return map[string]interface{}{"sassOptions": opts}
}

// Categories returns the stylesheet categories in rule order
func Categories() []Category {
	return []Category{
		{Type: "css", Command: CSSCommand, Match: `\.css$`},
		{
			Type:    "scss",
			Command: "sass",
			Match:   `\.scss$`,
			Loader:  &types.LoaderSpec{Loader: "sass-loader", Options: sassOptions(false)},
		},
		{
			Type:    "sass",
			Command: "sass",
			Match:   `\.sass$`,
			Loader:  &types.LoaderSpec{Loader: "sass-loader", Options: sassOptions(true)},
		},
		{
			Type:    "less",
			Command: "less",
			Match:   `\.less$`,
			Loader:  &types.LoaderSpec{Loader: "less-loader"},
		},
		{
			Type:    "stylus",
			Command: "stylus",
			Match:   `\.styl(us)?$`,
			Loader:  &types.LoaderSpec{Loader: "stylus-loader"},
		},
	}
}
