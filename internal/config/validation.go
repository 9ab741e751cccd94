package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fernandezvara/passentropy"
	"github.com/fernandezvara/passentropy/internal/logging"
)

//go:embed config.schema.json
var schemaData []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration against the schema and the rules the
// schema cannot express.
func (c *Config) Validate() error {
	if err := validateSchema(c); err != nil {
		return err
	}

	var errs ValidationErrors
	if c.Version < 1 || c.Version > Version {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (current: %d)", c.Version, Version),
		})
	}
	if !c.Dictionaries.Builtin && len(c.Dictionaries.Files) == 0 {
		errs = append(errs, ValidationError{
			Field:   "dictionaries",
			Message: "builtin lists are disabled and no files are configured",
		})
	}
	for _, name := range c.Keyboards.Layouts {
		if _, ok := passentropy.KeyboardByName(name); !ok {
			errs = append(errs, ValidationError{
				Field:   "keyboards.layouts",
				Message: fmt.Sprintf("unknown layout %q", name),
			})
		}
	}
	if c.Policy.MaxLength < c.Policy.MinLength {
		errs = append(errs, ValidationError{
			Field:   "policy.max_length",
			Message: fmt.Sprintf("%d is below min_length %d", c.Policy.MaxLength, c.Policy.MinLength),
		})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, ValidationError{Field: "logging.level", Message: err.Error()})
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		errs = append(errs, ValidationError{Field: "logging.format", Message: err.Error()})
	}
	if strings.EqualFold(c.Logging.Output, "file") && c.Logging.FilePath == "" {
		errs = append(errs, ValidationError{Field: "logging.file_path", Message: "required when output is file"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateSchema checks the structure and ranges of c against the embedded
// JSON schema.
func validateSchema(c *Config) error {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config.schema.json", bytes.NewReader(schemaData)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("config.schema.json")
	})
	if schemaErr != nil {
		return fmt.Errorf("compile schema: %w", schemaErr)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := compiledSchema.Validate(instance); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
