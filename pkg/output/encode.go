package output

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes data in a machine format
func Encode(w io.Writer, data interface{}, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		err = enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(data)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		err = enc.Encode(data)
	default:
		return errors.Newf(errors.ErrInvalidInput, "%s is not an encoding format", format)
	}

	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s", format)
	}
	return nil
}
