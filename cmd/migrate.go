/*
Copyright © 2025 The bgcatlas Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/canerbagci/bgcatlas/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate updates the database schema to the latest version.

GORM AutoMigrate adds missing tables, columns and indexes. It never
deletes columns or tables, existing data is preserved. The
region_families view is recreated.

Examples:
  bgcatlas migrate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runMigrate(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return migrateCmd
}

func runMigrate(ctx context.Context) error {
	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Database appears to be empty.
	Run '<em>bgcatlas create</em>' first to initialize the schema.`)
		return nil
	}

	gn.Info("Migrating schema to latest version...")
	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		return err
	}
	gn.Info("Schema is now up to date.")
	return nil
}
