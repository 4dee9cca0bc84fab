package main

import (
	"fmt"

	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/models"
	"corp-onboarding/internal/onboarding/format"
	profilesubmit "corp-onboarding/internal/onboarding/profile-submit"

	"github.com/spf13/cobra"
)

func newSubmitCmd(opts *rootOptions) *cobra.Command {
	var values models.ProfileFormValues

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and submit a profile without prompting",
		Example: `  onboarding submit --first-name Jane --last-name Doe \
    --phone 4165551234 --corporation-number "826 417 395"`,
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
			for _, field := range models.FieldNames() {
				raw := values.Get(field)
				if field == models.FieldPhone {
					if raw == "" {
						continue
					}
					raw = format.Phone(raw)
				}
				if err := f.SetValue(field, raw); err != nil {
					return err
				}
			}

			outcome, err := handler.Submit(cmd.Context())
			if apperrors.IsLocalSchema(err) {
				fmt.Fprintln(out, "The profile has errors:")
				printFieldErrors(out, err)
				return fmt.Errorf("profile was not submitted")
			}
			if err != nil {
				return err
			}
			if outcome.Kind != profilesubmit.OutcomeSuccess {
				return fmt.Errorf("submission ended with %s", outcome.Kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&values.FirstName, "first-name", "", "first name (max 50 characters)")
	cmd.Flags().StringVar(&values.LastName, "last-name", "", "last name (max 50 characters)")
	cmd.Flags().StringVar(&values.Phone, "phone", "", "Canadian phone number, +1 is added when missing")
	cmd.Flags().StringVar(&values.CorporationNumber, "corporation-number", "", "9-digit corporation number")
	return cmd
}
