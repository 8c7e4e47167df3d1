// cmd/cache.go
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var cacheForce bool

var cacheCmd = &cobra.Command{
	Use:   "cache [flags] [DAYS]",
	Short: "Pre-download and pre-extract data to speed up later queries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCache,
}

func init() {
	cacheCmd.Flags().BoolVarP(&cacheForce, "force", "f", false, "force re-download and re-extraction")
	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, args []string) error {
	daysArg := "max"
	if len(args) == 1 {
		daysArg = args[0]
	}
	days, err := resolveDaysFlag(daysArg)
	if err != nil {
		return err
	}
	if err := svc.CacheData(days, cacheForce); err != nil {
		return errors.New(userMessage(err))
	}
	return nil
}
