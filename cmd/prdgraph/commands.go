package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HendryAvila/prdgraph/internal/config"
	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/journal"
	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/lint"
	prdserver "github.com/HendryAvila/prdgraph/internal/server"
)

func graphCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the knowledge graph of a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cfg)
			if err != nil {
				return err
			}
			g := knowledge.BuildGraph(doc)

			out := cmd.OutOrStdout()
			if cfg.JSON {
				return printJSON(out, g)
			}
			renderGraph(out, g)
			return nil
		},
	}
}

func renderGraph(out io.Writer, g knowledge.Graph) {
	nodes := newTable(out, "ID", "Type", "Title", "Section")
	for _, n := range g.Nodes {
		nodes.AppendRow(table.Row{n.ID, n.Type, n.Title, n.SourceSection})
	}
	nodes.Render()

	edges := newTable(out, "From", "Edge", "To")
	for _, e := range g.Edges {
		edges.AppendRow(table.Row{e.FromID, e.Type, e.ToID})
	}
	edges.Render()
}

func contextCmd(v *viper.Viper) *cobra.Command {
	var (
		section string
		nodeIDs []string
		detail  string
	)
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the context pack an assistant would receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cfg)
			if err != nil {
				return err
			}

			focus := knowledge.DefaultFocus()
			if len(nodeIDs) > 0 {
				focus = knowledge.Focus{NodeIDs: nodeIDs}
			} else if focus.Section, err = knowledge.ParseSection(section); err != nil {
				return err
			}
			pack := knowledge.BuildContextPack(doc, &focus, cfg.Policies)

			out := cmd.OutOrStdout()
			if cfg.JSON {
				return printJSON(out, pack)
			}
			text := knowledge.Render(pack, detail)
			fmt.Fprintln(out, text+knowledge.TokenFooter(knowledge.EstimateTokens(text)))
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "section to focus on (default general)")
	cmd.Flags().StringSliceVar(&nodeIDs, "node", nil, "node id to focus on (repeatable)")
	cmd.Flags().StringVar(&detail, "detail", knowledge.DetailStandard, "detail level: summary, standard or full")
	return cmd
}

func applyCmd(v *viper.Viper) *cobra.Command {
	var batchPath, outPath string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a change batch to a document",
		Long: `Apply a change batch (JSON, or - for stdin) to the document. The result lists
applied and skipped changes. Without --out the document is not written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg)

			if err := requireDocument(cfg); err != nil {
				return err
			}
			raw, err := readBatch(cmd, batchPath)
			if err != nil {
				return err
			}

			sess, cleanup, err := prdserver.NewSession(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()
			res := sess.Apply(raw)

			if outPath != "" {
				if err := sess.Save(outPath); err != nil {
					return err
				}
				log.WithFields(logrus.Fields{"path": outPath, "applied": res.Applied}).Info("document written")
			}

			out := cmd.OutOrStdout()
			if cfg.JSON {
				return printJSON(out, res)
			}
			fmt.Fprintf(out, "Applied %d change(s), skipped %d.\n", res.Applied, res.Skipped())
			if len(res.Errors) > 0 {
				tw := newTable(out, "#", "Skipped because")
				for i, e := range res.Errors {
					tw.AppendRow(table.Row{i + 1, e})
				}
				tw.Render()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&batchPath, "batch", "", "change batch file, or - for stdin")
	cmd.Flags().StringVar(&outPath, "out", "", "write the updated document here")
	_ = cmd.MarkFlagRequired("batch")
	return cmd
}

func readBatch(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	return data, nil
}

func lintCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Lint every requirement; exits non-zero on failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			doc, err := loadDocument(cfg)
			if err != nil {
				return err
			}
			rep := lint.Document(doc, cfg.Policies.TermPolicy)

			out := cmd.OutOrStdout()
			if cfg.JSON {
				if err := printJSON(out, rep); err != nil {
					return err
				}
			} else {
				tw := newTable(out, "Requirement", "Status", "Issue", "Suggestion")
				for _, r := range rep.Results {
					tw.AppendRow(table.Row{r.RequirementID, r.Status, r.Issue, r.Suggestion})
				}
				tw.AppendFooter(table.Row{"", fmt.Sprintf("%d passed, %d failed", rep.Passed, rep.Failed)})
				tw.Render()
			}
			if rep.Failed > 0 {
				return fmt.Errorf("%d requirement(s) failed lint", rep.Failed)
			}
			return nil
		},
	}
}

func journalCmd(v *viper.Viper) *cobra.Command {
	var (
		limit      int
		documentID string
	)
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recorded change batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			store, err := journal.New(cfg.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(documentID, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.JSON {
				return printJSON(out, entries)
			}
			tw := newTable(out, "ID", "Document", "Created", "Applied", "Skipped", "Narrative")
			for _, e := range entries {
				tw.AppendRow(table.Row{e.ID, e.DocumentID, e.CreatedAt, e.Applied, e.Skipped, e.Narrative})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", journal.DefaultRecentLimit, "number of entries")
	cmd.Flags().StringVar(&documentID, "doc", "", "only entries for this document id")
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a change batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := contract.SchemaJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
