// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/sndpool"
	"github.com/ik5/sndpool/audio"
)

func newInfoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Show format, rate, channels and length of sound files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := flags.logger(cmd, nil)
			if err != nil {
				return err
			}
			reg := sndpool.NewRegistry()
			for _, path := range args {
				if err := printInfo(cmd, reg, path, logger); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printInfo(cmd *cobra.Command, reg *audio.Registry, path string, logger *slog.Logger) error {
	dec, err := reg.Lookup(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	logger.Debug("info: decoding", "path", path, "decoder", fmt.Sprintf("%T", dec))

	rate, channels := src.SampleRate(), src.Channels()
	samples, err := audio.ReadAll(src, 8192)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	frames := len(samples) / channels
	length := time.Duration(frames) * time.Second / time.Duration(rate)

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	fmt.Fprintf(cmd.OutOrStdout(), "%s\tformat=%s size=%s rate=%d channels=%d frames=%d length=%s\n",
		path, format, humanize.Bytes(uint64(st.Size())), rate, channels, frames, length.Round(time.Millisecond))
	return nil
}
