
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pageseo/internal/crawler"
	"pageseo/internal/ioformats"
	"pageseo/internal/models"
	"pageseo/internal/rewrite"
	"pageseo/internal/seo"
	"pageseo/pkg/logger"
)

var errJobsFailed = errors.New("one or more jobs failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pageseo",
		Short:        "Set title, description and canonical link on HTML pages",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	root.AddCommand(newApplyCmd(), newBatchCmd(), newInspectCmd())
	return root
}

func newRewriter(cmd *cobra.Command) *rewrite.Rewriter {
	verbose, _ := cmd.Flags().GetBool("verbose")
	client := crawler.NewHTTPClient(15*time.Second, 5*time.Second, 5*1024*1024) // 5MB cap
	return rewrite.New(client, logger.NewWriter(os.Stderr, verbose))
}

func newApplyCmd() *cobra.Command {
	var job models.Job
	var origin, path string

	cmd := &cobra.Command{
		Use:   "apply SOURCE",
		Short: "Apply metadata to one file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Source = args[0]
			if job.Canonical == "" && origin != "" {
				c, err := seo.CanonicalURL(origin, path)
				if err != nil {
					return err
				}
				job.Canonical = c
			}
			res := newRewriter(cmd).Run(cmd.Context(), job, cmd.OutOrStdout())
			if res.Error != "" {
				return errors.New(res.Error)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&job.Title, "title", "", "document title")
	f.StringVar(&job.Description, "description", "", "description meta content")
	f.StringVar(&job.Canonical, "canonical", "", "absolute canonical URL")
	f.StringVar(&origin, "origin", "", "origin to build the canonical URL from when --canonical is not set")
	f.StringVar(&path, "path", "/", "path joined to --origin")
	f.StringVarP(&job.Output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var out string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Run jobs from a CSV, NDJSON or YAML manifest and report NDJSON results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := ioformats.ReadJobs(args[0])
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			results := newRewriter(cmd).RunBatch(cmd.Context(), jobs, concurrency)

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := ioformats.WriteNDJSON(w, results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Error != "" {
					return errJobsFailed
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output NDJSON file (default stdout)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 10, "worker concurrency")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SOURCE",
		Short: "Print the title, description and canonical link a page currently has",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()
			meta, err := newRewriter(cmd).Inspect(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}
}
