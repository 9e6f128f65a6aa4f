// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import "errors"

var (
	ErrInvalidUID           = errors.New("invalid uid")
	ErrInvalidSessionClicks = errors.New("invalid sessionClicks")
)

// IsValidation reports whether err was caused by bad client input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidUID) || errors.Is(err, ErrInvalidSessionClicks)
}
