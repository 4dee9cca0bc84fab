package main

import (
	"errors"
	"fmt"
	"io"

	"corp-onboarding/internal/models"
	corporationcheck "corp-onboarding/internal/onboarding/corporation-check"
	"corp-onboarding/internal/onboarding/form"
	"corp-onboarding/internal/onboarding/format"
	profilesubmit "corp-onboarding/internal/onboarding/profile-submit"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newOnboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Fill in and submit a business profile interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := opts.app
			out := cmd.OutOrStdout()

			handler, err := profilesubmit.NewHandler(profilesubmit.HandlerOptions{
				AppConfig: a.cfg,
				Client:    a.client,
				Notifier:  writerNotifier(out),
				Recorder:  a.recorder(),
				Logger:    a.log,
			})
			if err != nil {
				return err
			}
			f := handler.Form()

			for {
				if err := promptProfile(f); err != nil {
					return err
				}

				state, err := checkCorporationNumber(cmd.Context(), a, f.Field(models.FieldCorporationNumber).Value, progressPrinter(out))
				if err != nil {
					return err
				}
				field := f.Field(models.FieldCorporationNumber)
				printDisplayState(out, field.Value, corporationcheck.ResolveDisplayState(
					corporationcheck.LocalFieldState{Error: field.Error, Touched: true}, state))
				if !state.Valid() {
					if retry, err := confirm("Edit the profile and try again?"); err != nil || !retry {
						return err
					}
					continue
				}

				submit, err := confirm("Submit profile?")
				if err != nil || !submit {
					return err
				}

				outcome, err := handler.Submit(cmd.Context())
				if err != nil {
					printFieldErrors(out, err)
					return err
				}
				if outcome.Kind == profilesubmit.OutcomeSuccess {
					return nil
				}
				if retry, err := confirm("Try again?"); err != nil || !retry {
					return err
				}
			}
		},
	}
}

// promptProfile asks for every field, prefilled with what the form already holds.
// Each input is checked against the same rules the submission gate applies.
func promptProfile(f *form.Form) error {
	values := f.Values()

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				CharLimit(form.NameMaxLength).
				Value(&values.FirstName).
				Validate(fieldValidator(f, models.FieldFirstName, nil)),
			huh.NewInput().
				Title("Last name").
				CharLimit(form.NameMaxLength).
				Value(&values.LastName).
				Validate(fieldValidator(f, models.FieldLastName, nil)),
			huh.NewInput().
				Title("Phone number").
				Placeholder("+1XXXXXXXXXX").
				Value(&values.Phone).
				Validate(fieldValidator(f, models.FieldPhone, format.Phone)),
			huh.NewInput().
				Title("Corporation number").
				Placeholder("123 456 789").
				CharLimit(format.MaxCorporationDisplayLen).
				Value(&values.CorporationNumber).
				Validate(fieldValidator(f, models.FieldCorporationNumber, nil)),
		),
	).Run()
	if err != nil {
		return err
	}

	values.Phone = format.Phone(values.Phone)
	for _, field := range models.FieldNames() {
		if err := f.SetValue(field, values.Get(field)); err != nil {
			return err
		}
	}
	return nil
}

// fieldValidator stores raw in the form and checks that field alone, so a prompt is
// never blocked by fields the user has not reached yet.
func fieldValidator(f *form.Form, field string, normalize func(string) string) func(string) error {
	return func(raw string) error {
		if normalize != nil {
			raw = normalize(raw)
		}
		if err := f.SetValue(field, raw); err != nil {
			return err
		}
		if msg := form.ValidateField(f.Values(), field); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func progressPrinter(w io.Writer) func(corporationcheck.State) {
	return func(s corporationcheck.State) {
		if s.Status == corporationcheck.StatusPending {
			fmt.Fprintf(w, "%s Checking %s...\n", indicatorSymbols[corporationcheck.IndicatorSpinner], s.Number)
		}
	}
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Value(&ok).
		Run()
	return ok, err
}
