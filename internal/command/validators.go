// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tfctl/cliwire/internal/output"
)

// FlagValidatorType checks one flag value.
type FlagValidatorType func(any) error

// FlagValidators runs validators in order and returns the first error.
func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// OutputValidator accepts the formats output.Render understands.
func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// SortValidator rejects sort keys that are empty after their modifiers.
func SortValidator(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, key := range strings.Split(s, ",") {
		if strings.Trim(strings.TrimSpace(key), "-!") == "" {
			return fmt.Errorf("invalid sort key %q", key)
		}
	}
	return nil
}
