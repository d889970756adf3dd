// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/sndpool/formats/wav"
	"github.com/ik5/sndpool/sound"
)

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var (
		out     string
		seconds float64
	)

	cmd := &cobra.Command{
		Use:   "render [sound]...",
		Short: "Trigger sounds and mix them offline into a WAV file",
		Long: `Trigger the named sounds, or every configured sound when none are named,
and write the mixed output to a 16-bit stereo WAV file. The scheduler is
reconciled every 10ms of output, as it would be when playing live.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if seconds <= 0 {
				return fmt.Errorf("--seconds must be positive, got %g", seconds)
			}

			sys, logger, err := flags.system(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			if err := triggerAll(sys, args, logger); err != nil {
				return err
			}

			rate := sys.Config().Mixer.SampleRate
			samples, err := sys.Render(int(seconds * float64(rate)))
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := wav.WriteFloat32(f, rate, sound.Channels, samples); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			logger.Info("sndpool: rendered", "out", out, "seconds", seconds, "sample_rate", rate)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output WAV path")
	cmd.Flags().Float64VarP(&seconds, "seconds", "s", 2, "length of the rendering")
	return cmd
}
