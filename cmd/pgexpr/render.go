package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/pgexpr/render"
)

var renderCmd = newRenderCmd()

func newRenderCmd() *cobra.Command {
	flags := &exprFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a JSON column expression to SQL",
		Long: `Build an index, text-coercion, or predicate expression over a JSON
or JSONB column and print the SQL the renderer produces, together with its
bind parameters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.build()
			if err != nil {
				return err
			}

			text, params, err := render.SQL(e)
			if err != nil {
				return err
			}

			sqlColor := color.New(color.FgCyan, color.Bold)
			sqlColor.Println(text)
			for i, p := range params {
				fmt.Printf("  $%d = %v (%s)\n", i+1, p.Value, p.Type.Name())
			}
			fmt.Printf("result type: %s\n", e.Type().Name())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
