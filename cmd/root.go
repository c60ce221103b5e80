package cmd

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/querylab/typesig/config"
	"github.com/querylab/typesig/output"
	"github.com/querylab/typesig/parser"
	"github.com/querylab/typesig/registry"
)

var (
	configPath string
	showFields bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "typesig",
	Args:  cobra.ExactArgs(1),
	Short: "Parse a type descriptor and print its structure.",
	Example: `typesig "array(bigint)"
typesig "row(a bigint,b map(varchar,array(double)))"
typesig --config types.yml "array(json)"
typesig --fields "row(id bigint,name varchar)"`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.Default
		if configPath != "" {
			cfg, err := config.Read(configPath)
			if err != nil {
				return errors.Wrap(err, "couldn't read config")
			}
			if err := cfg.Apply(reg); err != nil {
				return errors.Wrap(err, "couldn't register configured types")
			}
		}

		parsed, err := parser.New(reg).ParseType(args[0])
		if err != nil {
			return err
		}

		if showFields {
			output.WriteFields(os.Stdout, parsed)
			return nil
		}
		output.WriteTree(os.Stdout, parsed)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML file declaring custom types and aliases")
	rootCmd.Flags().BoolVar(&showFields, "fields", false, "print row fields as a table")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
