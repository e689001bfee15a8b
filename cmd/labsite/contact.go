package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/contact"
)

var contactForm contact.Form

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a contact form submission to the configured endpoint",
	Long: `Validate a contact form and forward it to contact.endpoint.

Examples:
  labsite contact --name "Ada" --email ada@example.org --message "Hello from the lab site"`,
	Args: cobra.NoArgs,
	Run:  runContact,
}

func init() {
	contactCmd.Flags().StringVar(&contactForm.Name, "name", "", "Sender name")
	contactCmd.Flags().StringVar(&contactForm.Email, "email", "", "Sender email")
	contactCmd.Flags().StringVar(&contactForm.Subject, "subject", "", "Subject line")
	contactCmd.Flags().StringVar(&contactForm.Message, "message", "", "Message body")
	rootCmd.AddCommand(contactCmd)
}

func runContact(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, err := contact.NewSubmitter(cfg.Contact.Endpoint, contact.WithLogger(logger)).Submit(ctx, contactForm)
	switch {
	case err == nil:
	case contact.IsValidation(err):
		exitWithError(ExitDataError, "%v", err)
	case errors.Is(err, contact.ErrNoEndpoint):
		exitWithError(ExitConfigError, "%v", err)
	case contact.StatusCode(err) != 0:
		exitWithError(ExitUpstream, "%v", err)
	default:
		exitWithError(ExitUpstream, "sending contact form: %v", err)
	}

	if humanOutput {
		outputHuman("Sent (id %s)\n", receipt.ID)
		return
	}
	outputJSON(StatusResponse{Status: "sent", ID: receipt.ID})
}
