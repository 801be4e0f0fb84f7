package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"icon-registry/internal/common/config"
	"icon-registry/internal/icons/dispatch"
	"icon-registry/internal/server"
	"icon-registry/pkg/render"
)

var (
	resolveLive bool
	renderSVG   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Dispatch a single name and print where its content came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		ctx := cmd.Context()

		reg, origin := server.StaticRegistry(ctx, cfg.Generator.RegistryPath, log)

		opts := []dispatch.Option{dispatch.WithLogger(log)}
		if resolveLive {
			cfg.Dispatch.LiveLookup = true
			live, closeLive := server.LiveSource(ctx, cfg, log)
			defer closeLive()
			opts = append(opts,
				dispatch.WithLive(live),
				dispatch.WithLiveTimeout(config.GetDuration(cfg.Dispatch.LiveTimeout)),
			)
		}

		res := dispatch.New(reg, opts...).Dispatch(ctx, args[0])

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name:     %s\n", res.Name)
		fmt.Fprintf(out, "tier:     %s\n", res.Tier)
		fmt.Fprintf(out, "matched:  %t\n", res.Matched)
		fmt.Fprintf(out, "registry: %s (%d icons)\n", origin, reg.Count())
		if renderSVG {
			fmt.Fprintln(out, render.SVG(res.Name, res.Content))
		} else {
			fmt.Fprintln(out, res.Content)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveLive, "live", false, "Consult the upstream on registry misses")
	resolveCmd.Flags().BoolVar(&renderSVG, "svg", false, "Print the full rendered <svg> element")
}
