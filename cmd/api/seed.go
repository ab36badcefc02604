package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/internal/infrastructure/fixtures"
	"github.com/cddiller/dashboard-api/internal/infrastructure/postgres"
	"github.com/cddiller/dashboard-api/pkg/config"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga en PostgreSQL las cuentas y registros de demo que falten",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

		pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()

		// una sola transacción
		var res fixtures.Result
		err = postgres.NewTxRunner(pool).Run(cmd.Context(), func(identities repository.IdentityRepository, records repository.RecordRepository) error {
			var loadErr error
			res, loadErr = fixtures.Load(cmd.Context(), identities, records, 0, time.Now())
			return loadErr
		})
		if err != nil {
			return err
		}
		log.Info().Int("identities", res.Identities).Int("records", res.Records).Msg("seed completado")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
