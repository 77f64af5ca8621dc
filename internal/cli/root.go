// Package cli implements yatractl, an offline operator tool over the compiled-in catalog.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/catalog"
	logpkg "github.com/kailas-cloud/yatra/internal/logger"
	searchuc "github.com/kailas-cloud/yatra/internal/usecase/search"
	"github.com/kailas-cloud/yatra/internal/version"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	json    bool
	verbose bool
}

// NewRootCmd builds the yatractl command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "yatractl",
		Short: "Query the yatra place catalog from the terminal",
		Long: `yatractl searches the compiled-in Ujjain and Madhya Pradesh catalog,
measures distances and plans routes without a running server.

Examples:
  yatractl search mahakal           # Rank catalog places
  yatractl popular -n 5             # Most important places
  yatractl nearby 23.1828 75.7681   # Places around a point
  yatractl route --json 23.17 75.78 23.18 75.76`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "output results as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newSearchCmd(opts),
		newPopularCmd(opts),
		newNearbyCmd(opts),
		newHubsCmd(opts),
		newDistanceCmd(opts),
		newRouteCmd(opts),
	)
	return root
}

// Execute runs yatractl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *globalOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := logpkg.NewLogger("local", "debug")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newSearchService() *searchuc.Service {
	return searchuc.New(searchuc.NewRanker(catalog.Places(), nil), nil, searchuc.Config{Bounds: catalog.DefaultBounds})
}
