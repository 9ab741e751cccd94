package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandezvara/passentropy"
)

type checkOutput struct {
	Accepted  bool                  `json:"accepted"`
	Entropy   float64               `json:"entropy"`
	RuleFails []string              `json:"rule_fails,omitempty"`
	Findings  []passentropy.Finding `json:"findings,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [password...]",
		Short: "Check passwords against the configured policy",
		Long: `Check each password against the policy section of the configuration:
length limits, required character classes and a minimum entropy.

Exits with an error if any password is rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := a.cfg.NewPolicy(a.estimator())
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)

			rejected := 0
			err := passwords(args, cmd.InOrStdin(), func(pw string) error {
				ok, res, err := policy.ValidateVerbose(pw, a.userInfo...)
				pErr, isPolicy := passentropy.IsPolicyError(err)
				if err != nil && !isPolicy {
					return err
				}
				if !ok {
					rejected++
				}

				if a.jsonOut {
					o := checkOutput{Accepted: ok, Entropy: res.Entropy}
					if isPolicy {
						o.RuleFails = pErr.RuleFails
						o.Findings = pErr.Findings
					}
					return enc.Encode(o)
				}

				if ok {
					colorGreen.Fprintf(out, "accepted")
					fmt.Fprintf(out, "  %.2f bits\n", res.Entropy)
					return nil
				}
				colorRed.Fprintf(out, "rejected")
				fmt.Fprintf(out, "  %.2f bits\n", res.Entropy)
				for _, r := range pErr.RuleFails {
					colorYellow.Fprintf(out, "  - %s\n", r)
				}
				for _, f := range pErr.Findings {
					fmt.Fprintf(out, "    %s at %d..%d (%.2f bits)\n", f.Type, f.Begin, f.Begin+f.Length, f.Entropy)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if rejected > 0 {
				return fmt.Errorf("%d password(s) rejected", rejected)
			}
			return nil
		},
	}
}
