package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/urferr/embabel-agent-examples/tools/horoscope"
)

var horoscopeBaseURL string

var horoscopeCmd = &cobra.Command{
	Use:   "horoscope <sign>",
	Short: "Look up the daily horoscope for a star sign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tool := horoscope.New(horoscope.WithBaseURL(horoscopeBaseURL))
		out := new(horoscope.Output)
		if err := tool.Run(cmd.Context(), horoscope.NewInput(args[0]), out); err != nil {
			return err
		}
		fmt.Println(out.Info())
		return nil
	},
}

func init() {
	horoscopeCmd.Flags().StringVar(&horoscopeBaseURL, "base-url", horoscope.DefaultBaseURL, "Horoscope service base URL")
}
