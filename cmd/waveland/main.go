// Package main implements the waveland CLI: config checking and an
// interactive terminal demo of the scrollable tiling layout engine.
//
// The real compositor embeds internal/layout behind its Wayland backend;
// this binary drives the same engine against synthetic windows so the
// layout can be exercised and debugged without a session.
package main

import (
	"context"
	"fmt"
	"os"

	log "charm.land/log/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/waveland/internal/config"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
)

var (
	configPath   string
	noAnimations bool
)

func main() {
	root := &cobra.Command{
		Use:     "waveland",
		Short:   "Scrollable tiling layout engine",
		Version: fmt.Sprintf("%s (%s)", version, commit),
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml")

	check := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := config.LoadFrom(path); err != nil {
				return err
			}
			fmt.Printf("%s: OK\n", path)
			return nil
		},
	}

	demo := &cobra.Command{
		Use:   "demo",
		Short: "Run the layout engine interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	demo.Flags().BoolVar(&noAnimations, "no-animations", false, "disable all animations")

	root.AddCommand(check, demo)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// loadOptions reads the config, falling back to defaults on failure.
func loadOptions() *config.Options {
	var opts *config.Options
	var err error
	if configPath != "" {
		opts, err = config.LoadFrom(configPath)
	} else {
		opts, err = config.Load()
	}
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		opts = config.Default()
	}
	if noAnimations {
		opts.DisableAnimations()
	}
	return opts
}
