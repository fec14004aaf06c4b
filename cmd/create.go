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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/canerbagci/bgcatlas/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the bgcatlas PostgreSQL schema from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables using GORM AutoMigrate
  4. Creates the region_families view

Tables: antismash_runs, regions, protoclusters, assembly2longestbiome,
bigslice_gcf_membership, bigslice_gcf.

Use --force to skip confirmation and drop existing tables.

Examples:
  bgcatlas create
  bgcatlas create --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd.Context(), forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(ctx context.Context, force bool) error {
	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	if hasTables {
		if !force && !confirmDrop() {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		gn.Info("Dropping all existing tables...")
		if err = op.DropAllTables(ctx); err != nil {
			return err
		}
		gn.Info("All tables dropped")
	}

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		return err
	}

	gn.Info(`Database schema creation complete!
Next steps:
  - Run '<em>bgcatlas analyze JOBS_FILE --db</em>' to analyze assemblies
  - Run '<em>bgcatlas harvest --db</em>' to load antiSMASH results`)
	return nil
}

func confirmDrop() bool {
	gn.Warn("Database contains existing tables.")
	gn.Warn("Creating schema will drop ALL existing tables and data.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
