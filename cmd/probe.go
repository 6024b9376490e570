package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/color"
	"github.com/vidplay/vidplay/icon"
	"github.com/vidplay/vidplay/key"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/probe"
	"github.com/vidplay/vidplay/style"
	"github.com/vidplay/vidplay/uri"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolP("json", "j", false, "Print results as JSON")
	probeCmd.Flags().Bool("no-cache", false, "Ignore and do not update cached results")
	probeCmd.Flags().IntP("timeout", "t", 0, "Seconds to wait for each duration, overrides "+key.ProbeTimeout)
	probeCmd.SetOut(os.Stdout)

	probeCmd.AddCommand(probeSchemaCmd)
	probeSchemaCmd.SetOut(os.Stdout)
}

var probeCmd = &cobra.Command{
	Use:   "probe <uri-or-path>...",
	Short: "Print media durations without opening a window",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJSON   = lo.Must(cmd.Flags().GetBool("json"))
			useCache = viper.GetBool(key.ProbeCache) && !lo.Must(cmd.Flags().GetBool("no-cache"))
			lifetime = time.Duration(viper.GetInt(key.ProbeCacheLifetime)) * time.Hour
			timeout  = time.Duration(viper.GetInt(key.ProbeTimeout)) * time.Second
		)

		if t := lo.Must(cmd.Flags().GetInt("timeout")); t > 0 {
			timeout = time.Duration(t) * time.Second
		}

		CheckDependencies()

		results := make([]*probe.Result, 0, len(args))
		for _, arg := range args {
			target, err := uri.Resolve(arg)
			handleErr(err)

			result, err := probeOne(cmd, target, timeout, useCache, lifetime)
			handleErr(err)
			results = append(results, result)

			if !asJSON {
				cmd.Printf("%s %s %s\n",
					icon.Get(icon.Success),
					style.Fg(color.Yellow)(result.Duration),
					style.Faint(result.URI),
				)
			}
		}

		if asJSON {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(results))
		}
	},
}

func probeOne(cmd *cobra.Command, target string, timeout time.Duration, useCache bool, lifetime time.Duration) (*probe.Result, error) {
	if useCache {
		if cached, ok := probe.Lookup(target, lifetime).Get(); ok {
			log.Debugf("probe cache hit: %s", target)
			return cached, nil
		}
	}

	result, err := probe.Run(cmd.Context(), newEngine(true), target, timeout)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", target, err)
	}

	if useCache {
		if err := probe.Remember(result, lifetime); err != nil {
			log.Warnf("probe cache: %s", err)
		}
	}

	return result, nil
}

var probeSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of probe results",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		schema := reflector.Reflect([]*probe.Result{})
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
