package cmd

import (
	"context"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/handoff-labs/handoff/pkg/config"
	"github.com/handoff-labs/handoff/pkg/drive"
	"github.com/handoff-labs/handoff/pkg/hodb"
	"github.com/handoff-labs/handoff/pkg/hodb/stor"
	"github.com/handoff-labs/handoff/pkg/transfer"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "handoffd",
	Short: "Run the handoff transfer session server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		db := hodb.MustConnectToDB()
		c := config.MustLoadFromHandoffDotenv()
		stors := stor.NewGormStors(db)

		sessionTTL := time.Duration(c.GetIntKeyWithDefault("HANDOFF_SESSION_TTL_HOURS", 24)) * time.Hour
		log.Infof("Session TTL: %s", sessionTTL)

		engine := transfer.NewBatchEngine(stors, drive.NewRestClient())
		orchestrator := transfer.NewOrchestrator(stors, engine, transfer.WithSessionTTL(sessionTTL))

		sweeper := transfer.NewExpirySweeper(
			transfer.WithSessionStor(stors.TransferSessionStor),
			transfer.WithSweepInterval(c.GetDurationKeyWithDefault("HANDOFF_SWEEP_INTERVAL", transfer.DefaultSweepInterval)))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go sweeper.Run(ctx)

		setupRoutes(e, RouteOpts{
			orchestrator: orchestrator,
			userStor:     stors.UserStor,
		})

		if err := e.Start(":" + c.GetKeyWithDefault("HANDOFF_PORT", "1492")); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
