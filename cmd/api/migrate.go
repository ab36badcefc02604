package main

import (
	"github.com/spf13/cobra"

	"github.com/cddiller/dashboard-api/internal/infrastructure/postgres"
	"github.com/cddiller/dashboard-api/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones de PostgreSQL",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return postgres.MigrateUp(cfg.DB.ConnectionString())
	},
}

var downSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte migraciones (--steps 0 = todas)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return postgres.MigrateDown(cfg.DB.ConnectionString(), downSteps)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "cantidad de migraciones a revertir")
}
