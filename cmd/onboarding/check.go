package main

import (
	"encoding/json"
	"fmt"

	"corp-onboarding/internal/models"
	corporationcheck "corp-onboarding/internal/onboarding/corporation-check"
	"corp-onboarding/internal/onboarding/form"

	"github.com/spf13/cobra"
)

type checkResult struct {
	Number    string                     `json:"number"`
	Status    corporationcheck.Status    `json:"status"`
	Indicator corporationcheck.Indicator `json:"indicator"`
	Message   string                     `json:"message,omitempty"`
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <corporation-number>",
		Short: "Check a corporation number against the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			f := form.New()
			if err := f.SetValue(models.FieldCorporationNumber, args[0]); err != nil {
				return err
			}
			if err := f.Blur(models.FieldCorporationNumber); err != nil {
				return err
			}
			field := f.Field(models.FieldCorporationNumber)

			state, err := checkCorporationNumber(cmd.Context(), a, field.Value, nil)
			if err != nil {
				return fmt.Errorf("corporation check did not settle: %w", err)
			}

			display := corporationcheck.ResolveDisplayState(
				corporationcheck.LocalFieldState{Error: field.Error, Touched: field.Touched},
				state,
			)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(checkResult{
					Number:    field.Value,
					Status:    state.Status,
					Indicator: display.Indicator,
					Message:   display.Message,
				}); err != nil {
					return err
				}
			} else {
				printDisplayState(out, field.Value, display)
			}

			if !state.Valid() {
				return fmt.Errorf("corporation number %q was not accepted", field.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
