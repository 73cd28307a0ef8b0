package pages

import (
	"context"
	"time"
)

// clickOutcome identifies which stage of the click fallback chain landed.
type clickOutcome int

const (
	clickedPrimary clickOutcome = iota
	clickedAlternate
	clickedJS
)

// fallbackClick drives the click fallback chain: the primary locator with
// bounded retries, then the alternate locator when one is set, then a
// JavaScript click. Success at any stage short-circuits the rest; when
// every stage fails the primary locator's last error is returned.
func fallbackClick(
	ctx context.Context,
	loc Locator,
	attempts int,
	delay time.Duration,
	click func(Locator) error,
	jsClick func(Locator) (bool, error),
) (clickOutcome, error) {
	err := attempt(ctx, attempts, delay, func() error { return click(loc) })
	if err == nil {
		return clickedPrimary, nil
	}

	if loc.Alt != nil {
		if altErr := click(*loc.Alt); altErr == nil {
			return clickedAlternate, nil
		}
	}

	if clicked, jsErr := jsClick(loc); jsErr == nil && clicked {
		return clickedJS, nil
	}

	return clickedPrimary, err
}
