package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/shopgrid/internal/database"
	"github.com/jask/shopgrid/internal/service"
)

func newSeedCmd(rt *runtime) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog with sample products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := rt.openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if reset {
				if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
					return err
				}
				if err := database.SeedDefaults(ctx, db); err != nil {
					return fmt.Errorf("seed defaults: %w", err)
				}
				rt.log.Info("catalog reset")
			}
			n, err := rt.catalogService(db).Products.Count(ctx)
			if err != nil {
				return err
			}
			rt.log.Info("catalog ready", zap.Int("products", n))
			fmt.Fprintf(cmd.OutOrStdout(), "%d products in %s\n", n, rt.cfg.Database.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "wipe the catalog before seeding")
	return cmd
}
