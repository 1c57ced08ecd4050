package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/styling/pkg/property"
)

func init() {
	RegisterCommand(&Command{
		Name:  "properties",
		Short: "List registered properties",
		Long: `Properties prints every registered property with its inheritance flag
and default value. Pass a YAML property table to include custom
registrations.`,
		Usage: "styledump properties [custom.yaml]",
		Run:   runProperties,
	})
}

func runProperties(args []string) error {
	registry := property.NewRegistry()
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := registry.RegisterYAML(data); err != nil {
			return fmt.Errorf("custom properties: %w", err)
		}
	}

	for _, name := range registry.Names() {
		def := registry.Lookup(name)
		inherited := " "
		if def.Inherited {
			inherited = "i"
		}
		fmt.Printf("%s %-20s %s\n", inherited, name, def.Default.String())
	}
	return nil
}
