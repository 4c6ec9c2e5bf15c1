package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/pgexpr/internal/cli/config"
	"github.com/conduit-lang/pgexpr/query"
)

var queryCmd = newQueryCmd()

func newQueryCmd() *cobra.Command {
	flags := &exprFlags{}
	var whereEquals string
	var limit int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Execute a JSON column expression against the configured database",
		Long: `Build an expression the same way as render, select it from the table,
and print the matching rows. The database URL comes from DATABASE_URL or
pgexpr.yml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				logger = zap.NewNop()
			}
			defer logger.Sync()

			e, err := flags.build()
			if err != nil {
				return err
			}

			dsn := config.GetDatabaseURL()
			if dsn == "" {
				return fmt.Errorf("no database URL configured (set DATABASE_URL or database.url in pgexpr.yml)")
			}

			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			b := query.New(flags.table, db).SelectAs(e, "value")
			if whereEquals != "" {
				b.Where(query.Eq(e, whereEquals))
			}
			if limit > 0 {
				b.Limit(limit)
			}

			stmt, queryArgs, err := b.ToSQL()
			if err != nil {
				return err
			}
			logger.Info("executing query",
				zap.String("sql", stmt),
				zap.Int("params", len(queryArgs)),
			)

			start := time.Now()
			rows, err := b.All(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("query finished",
				zap.Int("rows", len(rows)),
				zap.Duration("elapsed", time.Since(start)),
			)

			for _, row := range rows {
				fmt.Printf("%v\n", row["value"])
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&whereEquals, "where-equals", "", "only rows where the expression equals this value")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit the number of rows")
	return cmd
}
