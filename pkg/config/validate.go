package config

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/eykd/typedid-go/internal/slug"
	"github.com/eykd/typedid-go/pkg/generator"
)

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Validate checks every strategy name and parameter. Errors wrap
// ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Default, validation.Required, knownGenerator),
		validation.Field(&c.Generators, validation.By(validateGenerators)),
		validation.Field(&c.Kinds, validation.By(c.validateKinds)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

var knownGenerator = validation.In(toAny(generator.Names())...).
	Error("must be a known generator")

func validateGenerators(value any) error {
	specs, _ := value.(map[string]generator.Spec)
	errs := validation.Errors{}
	for name, spec := range specs {
		if err := validation.Validate(name, knownGenerator); err != nil {
			errs[name] = err
			continue
		}
		if spec.Name != "" && spec.Name != name {
			errs[name] = fmt.Errorf("generator key must be omitted or equal %q", name)
			continue
		}
		if spec.Prefix != "" {
			errs[name] = fmt.Errorf("prefix belongs under kinds")
			continue
		}
		spec.Name = name
		if err := validateSpec(spec); err != nil {
			errs[name] = err
		}
	}
	return errs.Filter()
}

// validateKinds checks each kind against the strategy it resolves to; kinds
// without a generator key inherit c.Default.
func (c *Config) validateKinds(value any) error {
	specs, _ := value.(map[string]generator.Spec)
	errs := validation.Errors{}
	for kind, spec := range specs {
		if !slug.Valid(kind) {
			errs[kind] = fmt.Errorf("kind name must be snake_case")
			continue
		}
		if spec.Name == "" {
			spec.Name = c.Default
		}
		if err := validateSpec(spec); err != nil {
			errs[kind] = err
		}
	}
	return errs.Filter()
}

func validateSpec(s generator.Spec) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, knownGenerator),
		validation.Field(&s.Length, validation.When(s.Length != nil,
			validation.By(positiveLength))),
		validation.Field(&s.Version,
			validation.When(s.Version != 0 && s.Name != generator.NameUUID,
				validation.Empty.Error("applies only to uuid")),
			validation.When(s.Version != 0,
				validation.In(1, 4, 6, 7).Error("must be 1, 4, 6 or 7"))),
		validation.Field(&s.MinLength, validation.Min(0), validation.Max(255)),
		validation.Field(&s.Prefix, validation.Match(prefixPattern).
			Error("must be lowercase letters and digits, starting with a letter")),
		validation.Field(&s.Separator, validation.Length(0, 3)),
	)
}

func positiveLength(value any) error {
	n, ok := value.(*int)
	if !ok || n == nil {
		return nil
	}
	if *n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
