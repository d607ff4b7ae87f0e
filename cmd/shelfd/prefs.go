package main

import (
	"fmt"
	"strconv"

	"github.com/dawsen1208/shelfd/internal/prefs"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or change persisted preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}

		acc := st.prefs.Accessibility()
		notif := st.prefs.Notification()

		fmt.Printf("tts:        %s\n", onOff(acc.TTSEnabled))
		fmt.Printf("a11y mode:  %s\n", onOff(acc.AccessibilityMode))
		fmt.Printf("in-app:     %s\n", onOff(notif.InApp))
		fmt.Printf("email:      %s\n", onOff(notif.Email))
		fmt.Printf("sound:      %s\n", onOff(notif.Sound))
		fmt.Printf("lead days:  %d\n", notif.ReminderLeadDays)
		return nil
	},
}

var prefsTTSCmd = &cobra.Command{
	Use:       "tts (on|off)",
	Short:     "Toggle spoken narration",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}
		enabled, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return st.prefs.SetAccessibility(func(a *prefs.Accessibility) {
			a.TTSEnabled = enabled
		})
	},
}

var prefsSoundCmd = &cobra.Command{
	Use:       "sound (on|off)",
	Short:     "Toggle the alert audio cue",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}
		enabled, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return st.prefs.SetNotification(func(n *prefs.Notification) {
			n.Sound = enabled
		})
	},
}

var prefsLeadDaysCmd = &cobra.Command{
	Use:   "lead-days <n>",
	Short: "Set how many days after return a review reminder stays active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openState(cfg)
		if err != nil {
			return err
		}
		days, err := strconv.Atoi(args[0])
		if err != nil || days < 0 {
			return fmt.Errorf("lead days must be a non-negative integer, got %q", args[0])
		}
		return st.prefs.SetNotification(func(n *prefs.Notification) {
			n.ReminderLeadDays = days
		})
	},
}

func init() {
	prefsCmd.AddCommand(prefsTTSCmd)
	prefsCmd.AddCommand(prefsSoundCmd)
	prefsCmd.AddCommand(prefsLeadDaysCmd)
	rootCmd.AddCommand(prefsCmd)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}
