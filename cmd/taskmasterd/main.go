// Command taskmasterd is the supervision daemon: it loads a program
// table from configuration, starts every autostart program, and serves
// remote control over a socket or HTTP transport until terminated.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mounadi05/taskmaster/internal/infrastructure/bootstrap"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/daemonctl"
)

var version = "dev"

func main() {
	var (
		configPath  string
		pidFilePath string
		foreground  bool
		watch       bool
	)

	root := &cobra.Command{
		Use:   "taskmasterd",
		Short: "Process supervision daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, pidFilePath, foreground, watch)
		},
	}
	root.Flags().StringVar(&configPath, "config", "config_file/taskmaster.yaml", "path to configuration file")
	root.Flags().StringVar(&pidFilePath, "pidfile", bootstrap.DefaultPIDFilePath, "path to pid-file")
	root.Flags().BoolVar(&foreground, "foreground", false, "stay attached to the controlling terminal instead of daemonizing")
	root.Flags().BoolVar(&watch, "watch", false, "auto-reload when the configuration file changes, in addition to SIGHUP")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the daemon version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskmasterd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, pidFilePath string, foreground, watch bool) error {
	if !foreground {
		isParent, err := daemonctl.Daemonize(".")
		if err != nil {
			return err
		}
		if isParent {
			return nil
		}
	}

	app, err := bootstrap.InitializeApp(configPath)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	return app.Run(pidFilePath, watch)
}
