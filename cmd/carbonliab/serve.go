package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/carbonliab/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the liability engine over HTTP",
	Long: `Start the JSON API. Endpoints live under /api/v1 (liability, montecarlo,
sensitivity, insights, summary, compare, facilities, markets, glossary,
pathways) plus /health. The --config simulation block and --seed set the
server's Monte Carlo defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadScenarioSet()
		if err != nil {
			return err
		}
		engine := newEngine(cmd, set)

		if debugMode {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting api server", zap.String("addr", serveAddr))
		return api.NewServer(engine).ListenAndServe(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
