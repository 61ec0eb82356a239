package commands

import (
	"fmt"

	"clovis-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetches a fresh session token pair and prints it.",
	Run: func(cmd *cobra.Command, args []string) {
		session, err := newService().Token(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch session tokens", err)
		}
		fmt.Printf("sid: %s\nbl:  %s\n", session.Sid, session.Bl)
	},
}
