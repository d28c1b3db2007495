package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/course-registration/coursereg-web/api/handlers"
	"github.com/course-registration/coursereg-web/api/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for the course registration pages",
	Run: func(cmd *cobra.Command, args []string) {

		// Set up logging and load the config
		if err := commonSetUp(cmd); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Flags given on the command line win over the config file
		if cmd.Flags().Changed("host") {
			appCfg.Host = host
		}
		if cmd.Flags().Changed("port") {
			appCfg.Port = port
		}

		endpoints, err := services.NewEndpoints(appCfg.API.BaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid backend base URL")
		}
		registry := services.NewRegistryClient(endpoints, appCfg.API.Timeout)

		service, err := handlers.NewService(registry, appCfg.UI.Title, appCfg.UI.RedirectDelay)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize page templates")
		}

		// Create routes
		r := handlers.NewRouter(service)

		srv := &http.Server{
			Addr:              appCfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shut down server")
			}
		}()

		log.Info().
			Str("addr", srv.Addr).
			Str("api_base_url", appCfg.API.BaseURL).
			Msgf("Server started at %s", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("could not start server")
		}
		log.Info().Msg("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 3000, "port to run the server on")
}
