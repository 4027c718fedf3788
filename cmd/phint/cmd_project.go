package main

import (
	"fmt"

	"github.com/dhamidi/phint/project"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show composer project structure",
		Long:  `Display the composer project's autoload rules and source files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject()
		},
	}

	return cmd
}

func runProject() error {
	proj, err := project.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Project: %s\n", proj.Name)
	if proj.Description != "" {
		fmt.Printf("About:   %s\n", proj.Description)
	}
	fmt.Printf("Root:    %s\n", proj.RootDir)
	fmt.Printf("\nAutoload:\n")

	for _, rule := range proj.Autoload {
		prefix := rule.Prefix
		if prefix == "" {
			prefix = "(fallback)"
		}
		suffix := ""
		if rule.Dev {
			suffix = " (dev)"
		}
		for _, dir := range rule.Dirs {
			fmt.Printf("  %s => %s%s\n", prefix, dir, suffix)
		}
	}

	files, err := proj.PHPFiles(true)
	if err != nil {
		fmt.Printf("\nfiles: error: %v\n", err)
		return nil
	}
	fmt.Printf("\nFiles: %d php files\n", len(files))
	return nil
}
