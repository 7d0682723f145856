// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag provides a wrapper around the standard flag package, allowing
// flags to be overridden by environment variables.
package envflag

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Type is a constraint that permits only types supported by envflag package.
type Type interface {
	int | int64 | float64 | bool | string | time.Duration
}

// Value sets up a flag with the given name, default value, and usage
// information on fs.
//
// The first environment variable from envNames that is set to a value
// parseable as T overrides the flag's default value. A value passed on the
// command line wins over both. Values that don't parse are reported to the
// output of fs and ignored.
func Value[T Type](
	fs *flag.FlagSet, getenv func(string) string,
	name string, value T, usage string, envNames ...string,
) *T {
	result := new(T)
	fv := &flagValue[T]{value: result}
	*result = value

	for _, env := range envNames {
		s := getenv(env)
		if s == "" {
			continue
		}
		err := fv.Set(s)
		if err == nil {
			break
		}
		fmt.Fprintf(fs.Output(), "Ignoring invalid value %q of %s environment variable: %v\n", s, env, err)
	}

	switch len(envNames) {
	case 0:
	case 1:
		usage += " Can be overridden by " + envNames[0] + " environment variable."
	default:
		usage += " Can be overridden by " + strings.Join(envNames, " or ") + " environment variables."
	}

	fs.Var(fv, name, usage)
	return result
}

type flagValue[T Type] struct {
	value *T
}

func (f *flagValue[T]) String() string {
	if f.value == nil {
		return ""
	}
	return fmt.Sprint(*f.value)
}

// IsBoolFlag allows boolean flags to be passed without a value.
func (f *flagValue[T]) IsBoolFlag() bool {
	_, ok := any(f.value).(*bool)
	return ok
}

func (f *flagValue[T]) Set(s string) error {
	switch p := any(f.value).(type) {
	case *int:
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*p = v
	case *int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*p = v
	case *time.Duration:
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*p = v
	case *string:
		*p = s
	}
	return nil
}
