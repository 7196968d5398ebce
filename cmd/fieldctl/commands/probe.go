// Package commands provides the fieldctl subcommands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agrox/fieldops/internal/app"
	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/config"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
)

// ProbeCommand returns the probe command.
func ProbeCommand() *cobra.Command {
	var (
		catalogFile string
		token       string
		asJSON      bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Resolve every module against the configured backend",
		Long: `Resolve every module against the configured backend.

Tables are read (never written) and buckets are checked, candidate by
candidate, exactly as the gateway does on first use. The report lists the
target each resource resolved to, or "unavailable".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if catalogFile == "" {
				catalogFile = cfg.AdaptersFile
			}
			catalog, err := probe.LoadCatalog(catalogFile)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if token != "" {
				ctx = backend.WithAccessToken(ctx, token)
			}

			stores, err := app.OpenStores(ctx, cfg, catalog)
			if err != nil {
				return err
			}
			defer stores.Close()

			return runProbe(ctx, cmd.OutOrStdout(), stores, catalog, asJSON)
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "adapter catalog file (defaults to ADAPTERS_FILE or the built-in catalog)")
	cmd.Flags().StringVar(&token, "token", "", "user access token, so row-level security applies")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")

	return cmd
}

type probeLine struct {
	Resource string `json:"resource"`
	State    string `json:"state"`
	Target   string `json:"target,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runProbe(ctx context.Context, out io.Writer, stores *app.Stores, catalog *probe.Catalog, asJSON bool) error {
	session := probe.NewSession()
	mods, err := repository.NewModules(stores.Tables, stores.Blobs, session, catalog)
	if err != nil {
		return err
	}

	results := mods.Probe(ctx, uuid.Nil)
	states := map[string]probe.Status{}
	for _, st := range session.Snapshot() {
		states[st.Resource] = st
	}

	lines := make([]probeLine, 0, len(results))
	for _, r := range results {
		st := states[r.Resource]
		line := probeLine{Resource: r.Resource, State: st.State.String(), Target: st.Target}
		if r.Err != nil && st.State != probe.StateUnavailable {
			// operators see raw backend errors here
			line.Error = r.Err.Error()
		}
		lines = append(lines, line)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RESOURCE\tSTATE\tTARGET\tERROR")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Resource, l.State, l.Target, l.Error)
	}
	return tw.Flush()
}
