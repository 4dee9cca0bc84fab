package main

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/models"
	corporationcheck "corp-onboarding/internal/onboarding/corporation-check"
	"corp-onboarding/internal/onboarding/format"
	profilesubmit "corp-onboarding/internal/onboarding/profile-submit"
)

var indicatorSymbols = map[corporationcheck.Indicator]string{
	corporationcheck.IndicatorNone:    " ",
	corporationcheck.IndicatorSpinner: "…",
	corporationcheck.IndicatorValid:   "✔",
	corporationcheck.IndicatorError:   "✖",
}

// writerNotifier prints notifications the way the mobile app raised alerts: title, then message.
func writerNotifier(w io.Writer) profilesubmit.Notifier {
	return profilesubmit.NotifierFunc(func(n models.Notification) {
		fmt.Fprintf(w, "%s\n  %s\n", n.Title, n.Message)
	})
}

func printFieldErrors(w io.Writer, err error) {
	for _, fe := range apperrors.FieldErrorsOf(err) {
		fmt.Fprintf(w, "  %s %s: %s\n", indicatorSymbols[corporationcheck.IndicatorError], fe.Field, fe.Message)
	}
}

func printDisplayState(w io.Writer, display string, ds corporationcheck.DisplayState) {
	line := fmt.Sprintf("%s %s", indicatorSymbols[ds.Indicator], display)
	if ds.Message != "" {
		line += "  " + ds.Message
	}
	fmt.Fprintln(w, line)
}

// checkCorporationNumber runs one debounced registry check and waits for it to settle.
// progress, when set, sees every intermediate state.
func checkCorporationNumber(ctx context.Context, a *app, display string, progress func(corporationcheck.State)) (corporationcheck.State, error) {
	settled := make(chan corporationcheck.State, 1)
	cfg := corporationcheck.ConfigFromAppConfig(a.cfg)

	validator, err := corporationcheck.NewValidator(corporationcheck.ServiceDependencies{
		Checker: a.client,
		Logger:  a.log,
		Listener: func(s corporationcheck.State) {
			if progress != nil {
				progress(s)
			}
			if s.Settled() {
				select {
				case settled <- s:
				default:
				}
			}
		},
	}, cfg)
	if err != nil {
		return corporationcheck.State{}, err
	}
	defer validator.Close()

	validator.Update(display)
	if !format.IsCompleteCorporation(format.CanonicalCorporation(display)) {
		return validator.State(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Debounce+cfg.Timeout+time.Second)
	defer cancel()

	select {
	case s := <-settled:
		return s, nil
	case <-ctx.Done():
		return validator.State(), ctx.Err()
	}
}
