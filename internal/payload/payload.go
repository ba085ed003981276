// Package payload reads request bodies for create and update commands from
// YAML or JSON files.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/sesctl/internal/ses"
)

// Stdin is the path that makes Load read from standard input.
const Stdin = "-"

var stdin io.Reader = os.Stdin

// validatable is implemented by request types with cross-field rules.
type validatable interface {
	Validate() error
}

// Load decodes the file at path into target. JSON files are read through the
// YAML parser, which accepts them as a subset. Keys that do not map to a
// field of target are rejected.
func Load(path string, target any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("payload file is required")
	}

	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading payload %q: %w", path, err)
	}

	if err := Decode(data, target); err != nil {
		return fmt.Errorf("payload %q: %w", path, err)
	}
	return nil
}

// Decode parses raw YAML or JSON into target.
func Decode(data []byte, target any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("payload is empty")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       timestampHook,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

var timestampType = reflect.TypeOf(ses.Timestamp{})

func timestampHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timestampType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return ses.ParseTimestamp(v)
	case time.Time:
		return ses.NewTimestamp(v), nil
	default:
		return data, nil
	}
}

var validate = validator.New()

// Validate runs struct tag validation and then the cross-field rules of v.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return formatValidationErrors(invalid)
		}
		return err
	}

	if r, ok := v.(validatable); ok {
		return r.Validate()
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid payload: %s", strings.Join(msgs, "; "))
}

// LoadAndValidate is Load followed by Validate.
func LoadAndValidate(path string, target any) error {
	if err := Load(path, target); err != nil {
		return err
	}
	return Validate(target)
}
