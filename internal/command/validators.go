// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/staranto/curl2py/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OptionValidator checks a key=value renderer option. The key ends up as a
// Python keyword argument so it must be an identifier.
func OptionValidator(value any) error {
	key, _, ok := strings.Cut(value.(string), "=")
	if !ok {
		return fmt.Errorf("option %q must be key=value", value)
	}
	if !identRe.MatchString(key) {
		return fmt.Errorf("option key %q is not a valid identifier", key)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
