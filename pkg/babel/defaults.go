package babel

import (
	"github.com/arthur-debert/mixconf/pkg/types"
)

// Default returns the compiled-in transpiler fragment
func Default() types.Fragment {
	return types.Fragment{
		"cacheDirectory": true,
		types.KeyPresets: []interface{}{
			[]interface{}{"@babel/preset-env", map[string]interface{}{
				"modules":            false,
				"forceAllTransforms": true,
			}},
		},
		types.KeyPlugins: []interface{}{
			"@babel/plugin-syntax-dynamic-import",
			"@babel/plugin-transform-object-rest-spread",
			[]interface{}{"@babel/plugin-transform-runtime", map[string]interface{}{
				"helpers": false,
			}},
		},
	}
}

// EnvironmentFragment roots the transpiler at the project directory. It is
// always merged last.
func EnvironmentFragment(root string) types.Fragment {
	return types.Fragment{
		"root":         root,
		"babelrc":      true,
		"configFile":   true,
		"babelrcRoots": []interface{}{".", root},
	}
}
