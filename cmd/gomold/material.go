package main

import (
	"fmt"

	"github.com/philipparndt/gomold/internal/material"
	"github.com/spf13/cobra"
)

var materialCmd = &cobra.Command{
	Use:   "material [property...]",
	Short: "Suggest materials for the required properties",
	Long: `Rank the built-in materials by how many of the required properties they offer.
Without arguments the known properties are listed.`,
	RunE: runMaterial,
}

func init() {
	rootCmd.AddCommand(materialCmd)
}

func runMaterial(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("Material properties")
		fmt.Println("===================")
		for _, c := range material.Categories {
			fmt.Printf("%s:\n", c.Name)
			for _, p := range c.Properties {
				fmt.Printf("  %s\n", p)
			}
		}
		return nil
	}

	required := make([]material.Property, 0, len(args))
	for _, arg := range args {
		p, err := material.ParseProperty(arg)
		if err != nil {
			return err
		}
		required = append(required, p)
	}

	suggestions := material.Suggest(required)
	if len(suggestions) == 0 {
		fmt.Println("No material offers any of the required properties.")
		return nil
	}

	fmt.Println("Suggested materials")
	fmt.Println("===================")
	for i, s := range suggestions {
		fmt.Printf("%d. %s (%d of %d)\n", i+1, s.Material.Name, s.Score, len(required))
	}
	return nil
}
