package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/soraterm/soraterm/internal/appconfig"
	"github.com/soraterm/soraterm/schema"
)

func newSendCmd() *cobra.Command {
	var cfgPath string
	var socketPath string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one event to a running soraterm over its socket",
	}
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	cmd.PersistentFlags().StringVar(&socketPath, "event-socket", "", "socket path to send to")

	deliver := func(cmd *cobra.Command, ev schema.Event) error {
		path := socketPath
		if path == "" {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			path = cfg.Events.SocketPath
		}
		return sendEvent(path, ev)
	}

	uintArg := func(arg string) (uint, error) {
		n, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("expected a non-negative index, got %q", arg)
		}
		return uint(n), nil
	}

	newTab := &cobra.Command{
		Use:   "new-tab [profile]",
		Short: "Open a new terminal tab",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return deliver(cmd, schema.NewTerminalWithDefaultProfile{})
			}
			ev := schema.NewTerminalWithProfile{ProfileName: args[0]}
			if cwd, _ := cmd.Flags().GetString("cwd"); cwd != "" {
				ev.WorkingDirectory = &cwd
			}
			return deliver(cmd, ev)
		},
	}
	newTab.Flags().String("cwd", "", "working directory for the new terminal")

	closeTab := &cobra.Command{
		Use:   "close-tab [index]",
		Short: "Close the active tab, or a tab by index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return deliver(cmd, schema.CloseActiveTab{})
			}
			idx, err := uintArg(args[0])
			if err != nil {
				return err
			}
			return deliver(cmd, schema.CloseTab{TabIndex: idx})
		},
	}

	switchTo := &cobra.Command{
		Use:   "switch-to <position>",
		Short: "Switch to the tab at a 0-indexed position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := uintArg(args[0])
			if err != nil {
				return err
			}
			return deliver(cmd, schema.SwitchToTab{Position: pos})
		},
	}

	text := &cobra.Command{
		Use:   "text <string>",
		Short: "Send raw text to the active terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deliver(cmd, schema.SendTextToTerminal{Text: args[0]})
		},
	}

	custom := &cobra.Command{
		Use:   "custom <name> [data]",
		Short: "Send a custom extension event",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := schema.Custom{Name: args[0]}
			if len(args) == 2 {
				ev.Data = args[1]
			}
			return deliver(cmd, ev)
		},
	}

	simple := func(use, short string, ev schema.Event) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return deliver(cmd, ev)
			},
		}
	}

	cmd.AddCommand(
		newTab,
		closeTab,
		switchTo,
		text,
		custom,
		simple("next-tab", "Switch to the next tab", schema.NextTab{}),
		simple("prev-tab", "Switch to the previous tab", schema.PreviousTab{}),
		simple("split-h", "Split the active pane horizontally", schema.SplitHorizontal{}),
		simple("split-v", "Split the active pane vertically", schema.SplitVertical{}),
		simple("close-pane", "Close the active pane", schema.CloseActivePane{}),
		simple("toggle-search", "Toggle the search bar", schema.ToggleSearch{}),
		simple("about", "Show the about dialog", schema.ShowAboutDialog{}),
		simple("reload-config", "Reload configuration", schema.ReloadConfig{}),
		simple("focus", "Focus the active terminal", schema.FocusActiveTerminal{}),
	)
	return cmd
}

func sendEvent(socketPath string, ev schema.Event) error {
	line, err := schema.Encode(ev)
	if err != nil {
		return err
	}
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("dial event socket %s: %w", socketPath, err)
	}
	defer func() { _ = conn.Close() }()
	if _, err := conn.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
