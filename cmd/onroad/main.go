package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/driveline/onroad/internal/bus"
	"github.com/driveline/onroad/internal/feed"
	"github.com/driveline/onroad/internal/tui"
	"github.com/driveline/onroad/internal/ui"
	"github.com/driveline/onroad/internal/update"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "onroad",
	Short: "Driver-assistance diagnostic overlay",
	Long: `Onroad renders a live driving session in the terminal: a camera backdrop
with a floating diagnostic panel summarizing actuator commands, vehicle
kinematics, control-loop state, and the attached panda safety
microcontroller. Click anywhere to toggle the panel.`,
	Version: version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the onroad window",
	Long: `Run opens the onroad window and samples the message bus at the UI tick
rate. With --demo (the default in this build) a synthetic telemetry feed
drives all topics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, _ := cmd.Flags().GetBool("metric")
		fps, _ := cmd.Flags().GetInt("fps")
		demo, _ := cmd.Flags().GetBool("demo")
		duration, _ := cmd.Flags().GetDuration("duration")

		if fps <= 0 || fps > 120 {
			return fmt.Errorf("--fps must be between 1 and 120, got %d", fps)
		}

		if notice := update.CheckPeriodically(version); notice != "" {
			fmt.Fprintln(os.Stderr, notice)
		}

		sm := bus.NewSubMaster(bus.DefaultTopics())
		sampler := ui.NewSampler(sm, metric)
		host := tui.NewHost(tui.Config{
			Sampler:      sampler,
			TickInterval: time.Second / time.Duration(fps),
		})

		ctx := cmd.Context()
		var cancel context.CancelFunc
		if duration > 0 {
			ctx, cancel = context.WithTimeout(ctx, duration)
		} else {
			ctx, cancel = context.WithCancel(ctx)
		}
		defer cancel()

		p := tea.NewProgram(host, tea.WithAltScreen(), tea.WithMouseCellMotion())

		feedErr := make(chan error, 1)
		if demo {
			go func() {
				feedErr <- feed.New(bus.NewPubMaster(sm), sampler).Run(ctx)
			}()
		} else {
			close(feedErr)
		}

		if duration > 0 {
			go func() {
				<-ctx.Done()
				p.Send(tea.QuitMsg{})
			}()
		}

		_, runErr := p.Run()
		cancel()
		if err := <-feedErr; err != nil {
			fmt.Fprintf(os.Stderr, "demo feed stopped: %v\n", err)
		}
		if runErr != nil {
			return fmt.Errorf("run UI: %w", runErr)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the onroad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("onroad %s\n", version)
		if notice := update.CheckPeriodically(version); notice != "" {
			fmt.Println(notice)
		}
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade onroad to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Current version: %s\n", version)
		fmt.Println("Checking for updates...")

		release, hasUpdate, err := update.CheckForUpdate(version)
		if err != nil {
			return err
		}
		if !hasUpdate {
			fmt.Println("Already at the latest version.")
			return nil
		}

		fmt.Printf("Updating to %s...\n", release.Version)
		if err := update.Update(version); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("metric", true, "Show speed in km/h instead of mph")
	runCmd.Flags().Int("fps", 20, "UI refresh rate in ticks per second")
	runCmd.Flags().Bool("demo", true, "Drive the bus with a synthetic telemetry feed")
	runCmd.Flags().Duration("duration", 0, "Exit after this long (0 = run until quit)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
