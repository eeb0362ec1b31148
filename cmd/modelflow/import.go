package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tordrt/modelflow"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the tables of a live database into the model",
		Long: `Import connects to a PostgreSQL, MySQL or SQLite database and prints its
tables as a model. With --format erdl the output can be edited and fed back
to "modelflow parse".`,
		Example: `  modelflow import --db-url sqlite://shop.db --format erdl
  modelflow import --db-url postgres://localhost/shop --schema sales -f markdown -d docs/model`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd)
		},
	}

	cmd.Flags().String("db-url", "", "Database URL (postgres://, mysql:// or sqlite://)")
	cmd.Flags().StringP("schema", "s", "", "Database schema name (default: public for PostgreSQL, DSN database for MySQL)")
	cmd.Flags().StringSliceP("tables", "t", nil, "Specific tables (comma-separated, optional)")
	cmd.Flags().StringSliceP("exclude", "x", nil, "Tables to leave out (comma-separated, optional)")

	return cmd
}

func (a *app) runImport(cmd *cobra.Command) error {
	dbCfg := a.cfg.Database
	if dbCfg.URL == "" {
		return fmt.Errorf("--db-url (or database.url in config) must be specified")
	}

	project, err := modelflow.ImportDatabase(cmd.Context(), dbCfg.URL, &modelflow.Options{
		Tables:        dbCfg.Tables,
		ExcludeTables: dbCfg.Exclude,
		SchemaName:    dbCfg.Schema,
		Logger:        a.logger,
	})
	if err != nil {
		return err
	}

	a.logger.Info("imported database", "project", project.Name, "tables", len(project.Tables), "relations", len(project.Relations))

	return a.writeProject(cmd, project)
}
