package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yigit/benchtrack/internal/bootstrap"
	"github.com/yigit/benchtrack/internal/seed"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := bootstrap.ConnectDatabase(ctx, cfg, lgr)
		if err != nil {
			return err
		}
		defer pool.Close()
		return bootstrap.RunMigrations(ctx, cfg, pool, lgr)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default admin, sample consultants and sample opportunities",
	Long: `Insert the default data. Existing rows are left untouched, so the
command can be run repeatedly. Migrations are applied first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := bootstrap.ConnectDatabase(ctx, cfg, lgr)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := bootstrap.RunMigrations(ctx, cfg, pool, lgr); err != nil {
			return err
		}
		if err := seed.NewSeeder(pool, lgr).CreateDefaultData(ctx); err != nil {
			return errors.Join(errors.New("seeding finished with errors"), err)
		}
		return nil
	},
}
