package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/umemkit/umem"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "strategies",
		Short: "List placement strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrategies()
		},
	})
}

type strategyInfo struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

func runStrategies() error {
	var list []strategyInfo
	for _, s := range umem.Strategies() {
		list = append(list, strategyInfo{Code: int(s), Name: s.String()})
	}
	if jsonOut {
		return printJSON(list)
	}
	for _, s := range list {
		printInfo("%d  %s\n", s.Code, s.Name)
	}
	return nil
}
