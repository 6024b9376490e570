// Package cmd implements the command-line interface for vidplay.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/color"
	"github.com/vidplay/vidplay/constant"
	"github.com/vidplay/vidplay/icon"
	"github.com/vidplay/vidplay/key"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/pipeline"
	"github.com/vidplay/vidplay/style"
	"github.com/vidplay/vidplay/tui"
	"github.com/vidplay/vidplay/uri"
	"github.com/vidplay/vidplay/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (emoji, nerd, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().Uint64P("window-id", "w", 0, "Render into an existing native window instead of opening one")
	lo.Must0(viper.BindPFlag(key.PlayerWindowID, rootCmd.Flags().Lookup("window-id")))

	rootCmd.Flags().BoolP("fullscreen", "f", false, "Start in fullscreen")
	lo.Must0(viper.BindPFlag(key.PlayerStartFullscreen, rootCmd.Flags().Lookup("fullscreen")))

	rootCmd.Flags().IntP("seek-step", "s", 10, "Seconds skipped by the left and right keys")
	lo.Must0(viper.BindPFlag(key.PlayerSeekStep, rootCmd.Flags().Lookup("seek-step")))
}

// rootCmd plays the media named by its argument.
var rootCmd = &cobra.Command{
	Use:   constant.Vidplay + " [uri-or-path]",
	Short: "A minimal video player driven from the terminal",
	Long: style.New().Bold(true).Foreground(color.HiPurple).Render(constant.Vidplay) +
		style.New().Italic(true).Foreground(color.HiCyan).Render(" - play, pause and seek any video mpv can open"),
	Args: cobra.MaximumNArgs(1),
	Example: strings.Join([]string{
		"  vidplay ~/Videos/talk.mkv",
		"  vidplay https://example.com/stream.m3u8 --seek-step 30",
		"  vidplay --window-id 0x3a00007 movie.mp4",
	}, "\n"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		target, err := uri.Resolve(args[0])
		handleErr(err)

		CheckDependencies()

		b := backend.New(newEngine(false))
		handleErr(b.Init())

		if id := viper.GetUint64(key.PlayerWindowID); id != 0 {
			b.SetWindow(pipeline.WindowHandle(id))
		}

		runErr := tui.Run(&tui.Options{
			URI:          target,
			Backend:      b,
			Fullscreen:   viper.GetBool(key.PlayerStartFullscreen),
			SeekStep:     time.Duration(viper.GetInt(key.PlayerSeekStep)) * time.Second,
			PollInterval: time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Millisecond,
			ShowTime:     viper.GetBool(key.TUIShowTime),
		})

		handleErr(b.Deinit())
		handleErr(runErr)
	},
}

// newEngine builds an mpv engine from the current configuration.
func newEngine(headless bool) *pipeline.MPVEngine {
	return pipeline.NewMPVEngine(pipeline.MPVOptions{
		Executable:        viper.GetString(key.PlayerExecutable),
		ExtraArgs:         viper.GetStringSlice(key.PlayerExtraArgs),
		SocketDir:         where.Sockets(),
		SocketWaitRetries: viper.GetInt(key.PlayerSocketWaitRetries),
		Headless:          headless,
	})
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
