package main

import (
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the product catalog to an XLSX or CSV file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		n, err := a.ExportCatalog(cmd.Context(), exportOut)
		if err != nil {
			return err
		}
		zlog.Info().Int("products", n).Str("out", exportOut).Msg("exported")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "products.xlsx", "output file; .csv selects CSV")
}
