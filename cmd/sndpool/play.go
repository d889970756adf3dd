// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ik5/sndpool"
	"github.com/ik5/sndpool/device"
)

const tickInterval = 10 * time.Millisecond

type playFlags struct {
	repeat    int
	perSecond float64
	showEvery time.Duration
}

func newPlayCmd(flags *rootFlags) *cobra.Command {
	pf := &playFlags{}

	cmd := &cobra.Command{
		Use:   "play [sound]...",
		Short: "Trigger sounds on the audio device and wait for them to finish",
		Long: `Trigger the named sounds, or every configured sound when none are named,
and play them on the default audio device until every channel is idle or
the command is interrupted.

With --repeat the whole set is triggered that many times, paced by --rate
triggers per second. A fast rate on few channels shows requests being
dropped and duplicates cut.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pf.repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1, got %d", pf.repeat)
			}
			if pf.perSecond <= 0 {
				return fmt.Errorf("--rate must be positive, got %g", pf.perSecond)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sys, logger, err := flags.system(ctx, cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			out, err := device.Open(sys.Mixer(), sys.Config().Mixer.BufferMS, logger)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := pf.trigger(ctx, sys, args, logger); err != nil {
				if ctx.Err() != nil {
					logger.Info("sndpool: interrupted")
					return nil
				}
				return err
			}

			return pf.wait(ctx, sys, out, logger)
		},
	}
	cmd.Flags().IntVarP(&pf.repeat, "repeat", "r", 1, "how many times to trigger the sounds")
	cmd.Flags().Float64Var(&pf.perSecond, "rate", 10, "triggers per second when repeating")
	cmd.Flags().DurationVar(&pf.showEvery, "show-every", 0, "log the playing slots at this interval (0 disables)")
	return cmd
}

// trigger fires the sounds repeat times, reconciling between triggers so
// finished channels are reused.
func (pf *playFlags) trigger(ctx context.Context, sys *sndpool.System, names []string, logger *slog.Logger) error {
	limiter := rate.NewLimiter(rate.Limit(pf.perSecond), 1)
	for range pf.repeat {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		sys.Tick()
		if err := triggerAll(sys, names, logger); err != nil {
			return err
		}
	}
	return nil
}

func (pf *playFlags) wait(ctx context.Context, sys *sndpool.System, out *device.Output, logger *slog.Logger) error {
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	lastShow := time.Now()

	for sys.Playing() {
		select {
		case <-ctx.Done():
			logger.Info("sndpool: interrupted")
			return nil
		case <-tick.C:
		}

		if n := sys.Tick(); n > 0 {
			logger.Debug("sndpool: channels finished", "count", n)
		}
		if err := out.Err(); err != nil {
			return err
		}
		if pf.showEvery > 0 && time.Since(lastShow) >= pf.showEvery {
			sys.Scheduler().LogSlots(ctx)
			lastShow = time.Now()
		}
	}

	logger.Info("sndpool: all channels idle")
	return nil
}
