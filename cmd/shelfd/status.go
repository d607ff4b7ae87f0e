package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dawsen1208/shelfd/internal/notify"
	"github.com/dawsen1208/shelfd/internal/store"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the notification log",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}

		entries := st.engine.Log()
		if len(entries) == 0 {
			fmt.Println("No notifications")
			return nil
		}

		fmt.Println(renderLogTable(entries))
		return nil
	},
}

var ackCmd = &cobra.Command{
	Use:   "ack",
	Short: "Acknowledge all notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}
		return st.engine.AcknowledgeAll()
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss <event-id>",
	Short: "Dismiss one review reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}
		return st.engine.DismissReminder(args[0])
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and broadcast logout to running instances",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}

		if err := os.Remove(cfg.API.TokenPath); err != nil && !os.IsNotExist(err) {
			return err
		}

		marker := filepath.Join(st.basePath, store.LogoutMarkerFile)
		return os.WriteFile(marker, []byte(time.Now().Format(time.RFC3339)), 0644)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(ackCmd)
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(logoutCmd)
}

func renderLogTable(entries []notify.Event) string {
	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")
	lightGray := lipgloss.Color("241")

	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center).Padding(0, 1)
	oddRowStyle := lipgloss.NewStyle().Foreground(gray).Padding(0, 1)
	evenRowStyle := lipgloss.NewStyle().Foreground(lightGray).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers("ID", "Title", "Subject", "When")

	for _, e := range entries {
		t.Row(e.ID, e.Title, e.SubjectTitle, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	return t.Render()
}
