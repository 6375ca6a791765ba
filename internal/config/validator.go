// internal/config/validator.go
//
// Startup validation of the configuration source.
//
// Context
// -------
// `cmd/dashboard` calls `Validator.Validate` once, before it reads the
// port from the Provider.  The validator re-loads the raw source itself,
// so it judges what the operator actually wrote rather than the merged,
// already-defaulted copy.  Two passes run in order:
//
//  1. Path pass.  Every schema path is looked up in the raw tree.  Missing
//     required paths are collected and returned together as one CRITICAL
//     error.  Missing optional paths are reported at INFO, naming the
//     default that the resolver substitutes.
//  2. Value pass.  The raw tree, merged with defaults, is decoded into
//     Config and checked with go-playground/validator.  A bad required
//     value is CRITICAL; a bad optional value is a WARNING report.
//
// Notes
// -----
//   • Validation never mutates configuration state.
//   • Struct-tag names resolve to koanf keys so messages use dotted paths.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/discord-dashboard/core/internal/fault"
	"github.com/discord-dashboard/core/internal/metrics"
)

//
// validator instance (package-level singleton)
//

var v = newStructValidator()

func newStructValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

//
// public API
//

// Reporter receives non-fatal findings.  *logger.Logger satisfies it.
type Reporter interface {
	Log(err error)
}

// Validator classifies schema paths against a freshly loaded source.
type Validator struct {
	resolver *Resolver
	reporter Reporter
	required []string
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithRequired replaces the required path set.
func WithRequired(paths ...string) ValidatorOption {
	return func(val *Validator) { val.required = slices.Clone(paths) }
}

// NewValidator returns a Validator that loads through r and reports
// through rep.
func NewValidator(r *Resolver, rep Reporter, opts ...ValidatorOption) *Validator {
	val := &Validator{
		resolver: r,
		reporter: rep,
		required: slices.Clone(RequiredPaths),
	}
	for _, opt := range opts {
		opt(val)
	}
	return val
}

// Validate returns nil when startup may continue.  Any returned error is
// a CRITICAL *fault.Error.
func (val *Validator) Validate() error {
	_, raw, err := val.resolver.LoadSource()
	if err != nil {
		metrics.ValidationFailuresTotal.Inc()
		return err
	}

	defaults := val.resolver.defaults

	var missingRequired, missingOptional []string
	for _, path := range SchemaPaths(defaults) {
		if Lookup(raw, path) != nil {
			continue
		}
		if val.isRequired(path) {
			missingRequired = append(missingRequired, path)
		} else {
			missingOptional = append(missingOptional, path)
		}
	}

	if len(missingRequired) > 0 {
		metrics.ValidationFailuresTotal.Inc()
		return fault.Configuration(
			"Missing required config options: "+strings.Join(missingRequired, ", "),
			critical,
		).Wrap(ErrMissingRequired)
	}

	for _, path := range missingOptional {
		val.report(fault.Configuration(
			fmt.Sprintf("Missing optional config option '%s'. Using default value: %v",
				path, Lookup(defaults, path)),
			fault.Details{Priority: fault.Info},
		))
	}

	if err := val.checkValues(MergeDefaults(raw, defaults)); err != nil {
		metrics.ValidationFailuresTotal.Inc()
		return err
	}
	return nil
}

/*──────────────────────────── value pass ──────────────────────────────────*/

func (val *Validator) checkValues(tree map[string]any) error {
	cfg, err := decode(tree)
	if err != nil {
		return err
	}

	err = v.Struct(&cfg)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var fatal []string
	for _, fe := range verrs {
		path := fieldPath(fe)
		msg := fmt.Sprintf("config option '%s' has invalid value %v (rule %q)",
			path, fe.Value(), fe.Tag())
		if val.isRequired(path) {
			fatal = append(fatal, msg)
			continue
		}
		val.report(fault.Configuration(
			"Invalid optional "+msg+"; it will be ignored or defaulted",
			fault.Details{Priority: fault.Warning},
		))
	}

	if len(fatal) > 0 {
		return fault.Configuration(
			"Invalid required "+strings.Join(fatal, "; "),
			critical,
		).Wrap(ErrInvalidValue)
	}
	return nil
}

// fieldPath turns "Config.server.port" into "server.port".
func fieldPath(fe validator.FieldError) string {
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	return path
}

func (val *Validator) isRequired(path string) bool {
	return slices.Contains(val.required, path)
}

func (val *Validator) report(err error) {
	if val.reporter != nil {
		val.reporter.Log(err)
	}
}
