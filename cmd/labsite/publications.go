package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/publication"
	"github.com/matsen/labsite/internal/render"
)

var publicationsHTML bool

var publicationsCmd = &cobra.Command{
	Use:   "publications [orcid]",
	Short: "Fetch publications for an ORCID iD",
	Long: `Fetch publications for an ORCID iD, trying ORCID, then Crossref, then OpenAlex.

Without an argument the configured orcid_id is used.

Examples:
  labsite publications 0000-0003-0796-6265
  labsite publications --human
  labsite publications 0000-0003-0796-6265 --html > publications.html`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPublications,
}

var publicationsSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Show the sample publications offered when nothing is found",
	Args:  cobra.NoArgs,
	Run:   runPublicationsSample,
}

func init() {
	publicationsCmd.PersistentFlags().BoolVar(&publicationsHTML, "html", false, "Output the rendered publications section")
	publicationsCmd.AddCommand(publicationsSampleCmd)
	rootCmd.AddCommand(publicationsCmd)
}

// PublicationsResponse is the JSON output of the publications command.
type PublicationsResponse struct {
	ORCID        string                    `json:"orcid,omitempty"`
	State        chain.State               `json:"state"`
	Provider     string                    `json:"provider,omitempty"`
	Publications []publication.Publication `json:"publications"`
	Stages       []chain.StageResult       `json:"stages,omitempty"`
	Trace        []chain.State             `json:"trace,omitempty"`
}

func runPublications(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	input := cfg.ORCIDID
	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		exitWithError(ExitConfigError, "no ORCID iD given and orcid_id is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	panel := render.NewPanel()
	res, err := render.NewLoader(newChain(cfg, logger)).Search(ctx, panel, input)
	if errors.Is(err, orcid.ErrInvalidID) {
		exitWithError(ExitDataError, "%s", err.Error())
	}
	if err != nil {
		exitWithError(ExitError, "rendering publications: %v", err)
	}
	id := panel.SearchValue()

	switch {
	case publicationsHTML:
		mustOutputPanel(panel)
	case humanOutput:
		if res.State == chain.Rendered {
			outputHuman("Publications - ORCID: %s (from %s)\n\n", id, res.Provider)
			writePublicationsHuman(os.Stdout, render.Group(res.Publications))
		} else {
			outputHuman("No publications found for %s across ORCID, Crossref and OpenAlex.\n", id)
			outputHuman("Run 'labsite publications sample' to see sample entries.\n")
		}
		fmt.Fprintln(os.Stderr)
		writeStagesHuman(os.Stderr, res)
	default:
		pubs := panel.Shown()
		if pubs == nil {
			pubs = []publication.Publication{}
		}
		outputJSON(PublicationsResponse{
			ORCID:        id,
			State:        res.State,
			Provider:     res.Provider,
			Publications: pubs,
			Stages:       res.Stages,
			Trace:        res.Trace,
		})
	}

	if res.State != chain.Rendered {
		os.Exit(ExitNoResults)
	}
}

func runPublicationsSample(cmd *cobra.Command, args []string) {
	panel := render.NewPanel()
	if err := panel.LoadSamples(); err != nil {
		exitWithError(ExitError, "rendering samples: %v", err)
	}

	switch {
	case publicationsHTML:
		mustOutputPanel(panel)
	case humanOutput:
		writePublicationsHuman(os.Stdout, render.Group(panel.Shown()))
	default:
		outputJSON(PublicationsResponse{State: chain.Rendered, Provider: "sample", Publications: panel.Shown()})
	}
}

func mustOutputPanel(panel *render.Panel) {
	html, err := panel.HTML()
	if err != nil {
		exitWithError(ExitError, "rendering publications: %v", err)
	}
	fmt.Println(html)
}
