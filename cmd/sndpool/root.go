// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik5/sndpool"
	"github.com/ik5/sndpool/config"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "sndpool",
		Short:         "Play many short sounds on a few mixer channels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "sndpool.yaml", "path to the YAML configuration")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")

	root.AddCommand(
		newInfoCmd(flags),
		newRenderCmd(flags),
		newPlayCmd(flags),
	)
	return root
}

// logger writes text records to the command's stderr at level, or at the
// config level when no override was given.
func (f *rootFlags) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level := config.LogInfo
	if cfg != nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if f.logLevel != "" {
		level = config.LogLevel(f.logLevel)
		if !level.IsValid() {
			return nil, fmt.Errorf("--log-level %q is invalid; valid values: debug, info, warn, error", f.logLevel)
		}
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level.Slog()})), nil
}

// system loads the configuration and builds a sound system from it. Sound
// paths are resolved against the directory holding the configuration.
func (f *rootFlags) system(ctx context.Context, cmd *cobra.Command) (*sndpool.System, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := f.logger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	sys, err := sndpool.NewSystem(ctx, cfg,
		sndpool.WithLogger(logger),
		sndpool.WithBaseDir(filepath.Dir(f.configPath)))
	if err != nil {
		return nil, nil, err
	}
	return sys, logger, nil
}

// triggerAll starts names, or every configured sound when names is empty.
func triggerAll(sys *sndpool.System, names []string, logger *slog.Logger) error {
	if len(names) == 0 {
		for _, s := range sys.Config().Sounds {
			names = append(names, s.Name)
		}
	}
	for _, name := range names {
		slot, err := sys.Trigger(name)
		if err != nil {
			return err
		}
		if slot == nil {
			logger.Warn("sndpool: request dropped, no free channel", "name", name)
		}
	}
	return nil
}
