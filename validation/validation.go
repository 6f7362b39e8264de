// Package validation checks the invariants of decoded workloads. Every
// violation is reported, not only the first one.
package validation

import (
	"fmt"
	"net"
	"path"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
	"golang.org/x/exp/maps"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Violation is a single broken invariant, Field is the json path of the value
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister("wgkey", isWireguardKey)
		mustRegister("abspath", isAbsPath)
		mustRegister("endpoint", isEndpoint)

		validate.RegisterStructValidation(ipNetLevel, zos.IPNet{})
		validate.RegisterStructValidation(containerLevel, zos.Container{})
		validate.RegisterStructValidation(networkResourcesLevel, zos.NetworkResources{})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "failed to register validation '%s'", tag))
	}
}

// Validate checks the envelope and the payload of a workload. It returns nil
// or a *multierror.Error of *Violation.
func Validate(wl zos.Workload) error {
	var result *multierror.Error

	v := getValidator()
	result = appendViolations(result, "", v.Struct(wl))

	if wl.Data == nil {
		result = multierror.Append(result, &Violation{Field: "data", Reason: "is required"})
		return result.ErrorOrNil()
	}

	prefix := "data." + wl.Data.Type().String() + "."
	result = appendViolations(result, prefix, v.Struct(wl.Data))

	return result.ErrorOrNil()
}

// Violations returns the violations carried by an error returned by Validate
func Violations(err error) []*Violation {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var violation *Violation
		if errors.As(err, &violation) {
			return []*Violation{violation}
		}
		return nil
	}

	violations := make([]*Violation, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var violation *Violation
		if errors.As(e, &violation) {
			violations = append(violations, violation)
		}
	}
	return violations
}

func appendViolations(result *multierror.Error, prefix string, err error) *multierror.Error {
	if err == nil {
		return result
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return multierror.Append(result, &Violation{Field: strings.TrimSuffix(prefix, "."), Reason: err.Error()})
	}

	for _, e := range validationErrors {
		result = multierror.Append(result, &Violation{
			Field:  prefix + fieldPath(e.Namespace()),
			Reason: reason(e),
		})
	}
	return result
}

// fieldPath drops the name of the validated struct from the namespace
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "min":
		return "must have at least " + e.Param() + " entries"
	case "ip":
		return "must be a valid ip address"
	case "wgkey":
		return "must be a valid wireguard key"
	case "abspath":
		return "must be an absolute path"
	case "endpoint":
		return "must be a host:port address"
	case "unique":
		return "is used more than once"
	case "family":
		return zos.ErrMaskFamily.Error()
	case "prefix":
		return zos.ErrMaskNotCanonical.Error()
	case "overlap":
		return "overlaps with " + e.Param()
	case "secret":
		return fmt.Sprintf("variable '%s' is also defined in secret_environment", e.Param())
	}
	return fmt.Sprintf("is invalid (%s)", e.Tag())
}

func isWireguardKey(fl validator.FieldLevel) bool {
	_, err := wgtypes.ParseKey(fl.Field().String())
	return err == nil
}

func isAbsPath(fl validator.FieldLevel) bool {
	return path.IsAbs(fl.Field().String())
}

func isEndpoint(fl validator.FieldLevel) bool {
	host, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil || host == "" {
		return false
	}
	p, err := strconv.ParseUint(port, 10, 16)
	return err == nil && p != 0
}

func ipNetLevel(sl validator.StructLevel) {
	n := sl.Current().Interface().(zos.IPNet)

	err := n.Check()
	switch {
	case err == nil:
	case errors.Is(err, zos.ErrMissingIP):
		sl.ReportError(n.IP, "ip", "IP", "required", "")
	case errors.Is(err, zos.ErrMaskFamily):
		sl.ReportError(n.Mask, "mask", "Mask", "family", "")
	case errors.Is(err, zos.ErrMaskNotCanonical):
		sl.ReportError(n.Mask, "mask", "Mask", "prefix", "")
	}
}

func containerLevel(sl validator.StructLevel) {
	c := sl.Current().Interface().(zos.Container)

	seen := make(map[string]struct{}, len(c.Volumes))
	for i, m := range c.Volumes {
		if _, ok := seen[m.MountPoint]; ok {
			sl.ReportError(m.MountPoint, fmt.Sprintf("volumes[%d].mount_point", i), "MountPoint", "unique", "")
			continue
		}
		seen[m.MountPoint] = struct{}{}
	}

	keys := maps.Keys(c.Environment)
	slices.Sort(keys)
	for _, key := range keys {
		if _, ok := c.SecretEnvironment[key]; ok {
			sl.ReportError(c.Environment[key], fmt.Sprintf("environment[%s]", key), "Environment", "secret", key)
		}
	}
}

func networkResourcesLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(zos.NetworkResources)

	for i := range r.Peers {
		for j := 0; j < i; j++ {
			for a, current := range r.Peers[i].AllowedIPRange {
				for b, other := range r.Peers[j].AllowedIPRange {
					if !current.Overlaps(other) {
						continue
					}
					sl.ReportError(
						current,
						fmt.Sprintf("peers[%d].allowed_ip_range[%d]", i, a),
						"AllowedIPRange",
						"overlap",
						fmt.Sprintf("peers[%d].allowed_ip_range[%d]", j, b),
					)
				}
			}
		}
	}
}
