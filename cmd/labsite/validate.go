package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/orcid"
)

var validateCmd = &cobra.Command{
	Use:   "validate <orcid>",
	Short: "Check an ORCID iD without contacting any provider",
	Long: `Check that input has the ORCID iD shape (four groups of four digits,
the last character may be X) and print the normalized iD.

Exits with status 3 when the iD is invalid.`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	resp := ValidateResponse{Input: args[0]}
	id, err := orcid.Validate(args[0])
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Valid = true
		resp.ORCID = id
		resp.ProfileURL = orcid.ProfileURL(id)
	}

	if humanOutput {
		if resp.Valid {
			outputHuman("%s is valid (%s)\n", resp.ORCID, resp.ProfileURL)
		} else {
			outputHuman("%q is not a valid ORCID iD: %s\n", resp.Input, resp.Error)
		}
	} else {
		outputJSON(resp)
	}

	if !resp.Valid {
		os.Exit(ExitDataError)
	}
}
