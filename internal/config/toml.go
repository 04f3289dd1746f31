package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LoadFile decodes the TOML file at path over cfg. Keys absent from the
// file keep their current values; unknown keys are a ParseError.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(path, data, cfg)
}

// decode parses TOML data into cfg. cfg is left untouched on error.
func decode(source string, data []byte, cfg *Config) error {
	next := cfg.Clone()

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(next); err != nil {
		return newParseError(source, err)
	}

	next.Path = cfg.Path
	*cfg = *next
	return nil
}

// newParseError converts a go-toml error into a ParseError with position.
func newParseError(source string, err error) *ParseError {
	pe := &ParseError{
		Path:    source,
		Message: err.Error(),
		Err:     err,
	}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		pe.Line, pe.Column = decodeErr.Position()
	case errors.As(err, &strictErr):
		if len(strictErr.Errors) > 0 {
			first := strictErr.Errors[0]
			pe.Line, pe.Column = first.Position()
			pe.Message = "unknown key " + strings.Join(first.Key(), ".")
		}
	}
	return pe
}
