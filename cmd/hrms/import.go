package main

import (
	"errors"
	"fmt"
	"os"

	"axiapac.com/hrms/utils"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk load records from files",
	}

	var file string
	employees := &cobra.Command{
		Use:   "employees",
		Short: "Create employees from a csv of name,email,phone,position,department,joinDate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := utils.ParseCSV(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			rt, err := a.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			created, err := rt.svc.ImportEmployees(cmd.Context(), rows)
			if err != nil {
				return err
			}
			a.log.WithField("file", file).WithField("count", len(created)).Info("employees imported")
			return nil
		},
	}
	employees.Flags().StringVarP(&file, "file", "f", "", "csv file to import")

	importCmd.AddCommand(employees)
	return importCmd
}
