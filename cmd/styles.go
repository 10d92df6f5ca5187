package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumilearn/lumi/internal/session"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the supported learning styles",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range session.StyleCatalog {
			marker := " "
			if info.Style == session.DefaultStyle {
				marker = "*"
			}
			fmt.Printf("%s %-14s %s\n", marker, info.Style, info.Description)
		}
		fmt.Println("\n* default. Run lumi and press Ctrl+D to discover yours.")
	},
}
