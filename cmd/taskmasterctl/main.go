// Command taskmasterctl is the remote control client: a thin cobra CLI
// that opens a socket or HTTP connection to a running taskmasterd and
// prints its structured reply, mirroring supervisorctl.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var (
		addr      string
		transport string
	)

	root := &cobra.Command{
		Use:   "taskmasterctl",
		Short: "Control client for taskmasterd",
	}
	root.PersistentFlags().StringVar(&addr, "addr", "", "daemon address (default 127.0.0.1:1337 socket / 127.0.0.1:4242 http)")
	root.PersistentFlags().StringVar(&transport, "transport", "socket", "transport to use: socket or http")

	root.AddCommand(
		verbCommand("alive", 0, &addr, &transport),
		verbCommand("status", 0, &addr, &transport),
		verbCommand("detail", 1, &addr, &transport),
		verbCommand("start", 1, &addr, &transport),
		verbCommand("stop", 1, &addr, &transport),
		verbCommand("restart", 1, &addr, &transport),
		verbCommand("reload", 0, &addr, &transport),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskmasterctl: %v\n", err)
		os.Exit(1)
	}
}

func verbCommand(verb string, wantArgs int, addr, transport *string) *cobra.Command {
	use := verb
	if wantArgs > 0 {
		use = verb + " <name>"
	}
	return &cobra.Command{
		Use:   use,
		Short: verb + " a program",
		Args:  cobra.ExactArgs(wantArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := append([]string{verb}, args...)
			reply, err := dispatch(*transport, resolveAddr(*addr, *transport), tokens)
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}

func resolveAddr(addr, transport string) string {
	if addr != "" {
		return addr
	}
	if transport == "http" {
		return "127.0.0.1:4242"
	}
	return "127.0.0.1:1337"
}
