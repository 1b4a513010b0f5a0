// prdgraph: a PRD knowledge graph with an assistant change contract.
//
// Usage:
//
//	prdgraph serve --document prd.yaml     # MCP server (stdio transport)
//	prdgraph graph --document prd.yaml     # print the knowledge graph
//	prdgraph context --document prd.yaml --section goals
//	prdgraph apply --document prd.yaml --batch changes.json --out prd.yaml
//	prdgraph lint --document prd.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HendryAvila/prdgraph/internal/config"
	"github.com/HendryAvila/prdgraph/internal/prd"
	prdserver "github.com/HendryAvila/prdgraph/internal/server"
)

func main() {
	if err := newRootCmd(config.NewViper()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "prdgraph",
		Short: "PRD knowledge graph and assistant change contract",
		Long: `prdgraph holds a Product Requirements Document as a typed knowledge graph.
An assistant reads a focused slice of the graph (a context pack) and proposes
add/update/link changes, which are checked against policy and applied one by one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(config.KeyDataDir, config.DefaultDataDir(), "directory for the change journal")
	flags.StringP(config.KeyDocument, "d", "", "PRD document (YAML or JSON)")
	flags.Bool(config.KeyJournal, true, "record applied change batches")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.Bool(config.KeyJSON, false, "output JSON")
	flags.String(config.KeyConfig, "", "config file (any format viper reads)")
	for _, key := range []string{
		config.KeyDataDir, config.KeyDocument, config.KeyJournal,
		config.KeyLogLevel, config.KeyJSON, config.KeyConfig,
	} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		serveCmd(v),
		graphCmd(v),
		contextCmd(v),
		applyCmd(v),
		lintCmd(v),
		journalCmd(v),
		schemaCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prdgraph %s\n", prdserver.Version)
		},
	}
}

// loadDocument reads the configured document; commands other than serve
// need one.
func loadDocument(cfg config.Config) (*prd.Document, error) {
	if err := requireDocument(cfg); err != nil {
		return nil, err
	}
	return prd.LoadFile(cfg.Document)
}

func requireDocument(cfg config.Config) error {
	if cfg.Document == "" {
		return fmt.Errorf("--%s is required", config.KeyDocument)
	}
	return nil
}
