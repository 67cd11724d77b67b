package cli

import (
	"fmt"
	"strings"

	"github.com/AntonioJCosta/pgdock/internal/handlers/ui"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewListCommand creates the 'list' subcommand.
func NewListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available shortcut commands.",
		Long:  `Displays every shortcut with the command line it runs, after placeholders are filled in from the configuration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListCmd(cmd, args, a)
		},
	}
	return cmd
}

// runListCmd contains the core logic for the 'list' command.
func runListCmd(cmd *cobra.Command, _ []string, a *app) error {
	svcs, err := a.load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	dispatcher := svcs.Dispatch

	fmt.Fprintln(out, ui.HeaderColor("Available commands:"))
	if svcs.Source != "" {
		fmt.Fprintln(out, ui.DetailColor(fmt.Sprintf("(Configuration: %s)", svcs.Source)))
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Name", "Command", "Description"})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, s := range dispatcher.Shortcuts() {
		argv, err := dispatcher.Command(s.Name, nil)
		if err != nil {
			return fmt.Errorf("could not expand shortcut %s: %w", s.Name, err)
		}
		name := ui.ShortcutNameColor(s.Name)
		if s.Name == dispatcher.Default() {
			name += " " + ui.DefaultMarkColor("(default)")
		}
		table.Append([]string{name, strings.Join(argv, " "), s.Description})
	}
	table.Render()
	return nil
}
