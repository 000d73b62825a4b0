package main

import (
	"fmt"
	"strings"

	"github.com/bububa/instructor-go/pkg/instructor"
	"github.com/spf13/cobra"

	"github.com/urferr/embabel-agent-examples/examples"
	"github.com/urferr/embabel-agent-examples/researcher"
	"github.com/urferr/embabel-agent-examples/tools/webscraper"
	"github.com/urferr/embabel-agent-examples/tools/websearch"
)

var (
	researchConfigPath string
	researchSearchURL  string
)

var researchCmd = &cobra.Command{
	Use:   "research <question or topic>",
	Short: "Research a question or topic with two models and a critic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := researcher.DefaultConfig()
		if researchConfigPath != "" {
			var err error
			if cfg, err = researcher.LoadConfig(researchConfigPath); err != nil {
				return err
			}
		}
		opts := []researcher.Option{
			researcher.WithOpenAIClient(examples.NewInstructor(instructor.ProviderOpenAI)),
			researcher.WithAnthropicClient(examples.NewInstructor(instructor.ProviderAnthropic)),
		}
		if researchSearchURL != "" {
			opts = append(opts,
				researcher.WithSearchTool(websearch.New(websearch.WithBaseURL(researchSearchURL), websearch.WithMaxResults(5))),
				researcher.WithScraperTool(webscraper.New()),
			)
		}
		r := researcher.New(cfg, opts...)
		report, err := r.Run(cmd.Context(), researcher.NewUserInput(strings.Join(args, " ")))
		if err != nil {
			return err
		}
		fmt.Println(report.Render())
		return nil
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchConfigPath, "config", "", "Path to a researcher YAML config")
	researchCmd.Flags().StringVar(&researchSearchURL, "search-url", "", "SearxNG base URL for web context")
}
