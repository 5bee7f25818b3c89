// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command ledspi simulates the SPI to WS2811 LED strip bridge and renders its
// Tiny Tapeout wrapper.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/db47h/ledspi/blinky"
	"github.com/db47h/ledspi/hwlib"
	"github.com/db47h/ledspi/hwsim"
	"github.com/db47h/ledspi/internal/config"
	"github.com/db47h/ledspi/internal/logging"
	"github.com/db47h/ledspi/internal/sim"
	"github.com/db47h/ledspi/internal/tt"
	"github.com/db47h/ledspi/trace"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ledspi",
		Short:         "SPI to WS2811 LED strip bridge simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "configuration file (TOML)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")

	root.AddCommand(a.simulateCmd(), a.wrapperCmd(), a.blinkyCmd())
	return root
}

func (a *app) setup(flags *pflag.FlagSet) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	logging.ConfigureRuntime()
	if lvl, ok := a.cfg.LogLevel(); ok {
		logging.SetLevel(lvl)
	}
	if flags.Changed("log-level") {
		lvl, ok := logging.ParseLevel(a.logLevel)
		if !ok {
			return errors.Errorf("invalid log level %q", a.logLevel)
		}
		logging.SetLevel(lvl)
	}
	a.log = logging.Logger()
	return nil
}

// parseWords parses a list of hexadecimal words.
func parseWords(list []string, width int) ([]uint64, error) {
	list = lo.Compact(lo.Map(list, func(s string, _ int) string { return strings.TrimSpace(s) }))
	words := make([]uint64, 0, len(list))
	for _, s := range list {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid word %q", s)
		}
		if width < 64 && v>>uint(width) != 0 {
			return nil, errors.Errorf("word %q does not fit in %d bits", s, width)
		}
		words = append(words, v)
	}
	return words, nil
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		words   []string
		vcdPath string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Send words to the bridge and decode the channel outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := sim.OptionsFromConfig(a.cfg)
			ws, err := parseWords(words, opts.Design.WordWidth)
			if err != nil {
				return err
			}
			if vcdPath != "" {
				opts.Trace = trace.New()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			res, err := sim.Run(ctx, opts, ws, a.log)
			if err != nil {
				return err
			}
			if vcdPath != "" {
				if err := writeVCD(vcdPath, opts.Trace, a.cfg.Project.TopModule); err != nil {
					return err
				}
				a.log.Info().Str("file", vcdPath).Msg("trace written")
			}
			printResult(cmd.OutOrStdout(), res, opts.Design.WordWidth)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&words, "words", "w", []string{"ff0000", "00ff00", "0000ff"}, "comma separated list of hexadecimal words to send")
	f.StringVar(&vcdPath, "vcd", "", "write a VCD trace to this file")
	return cmd
}

func writeVCD(path string, rec *trace.Recorder, module string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create trace file")
	}
	if err := rec.WriteVCD(f, module, "1 us"); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close trace file")
}

func printResult(w io.Writer, res sim.Result, width int) {
	digits := (width + 3) / 4
	for i, ws := range res.Channels {
		hex := lo.Map(ws, func(v uint64, _ int) string { return fmt.Sprintf("%0*x", digits, v) })
		fmt.Fprintf(w, "out[%d]: %s\n", i, strings.Join(hex, " "))
	}
	fmt.Fprintf(w, "%d cycles, %d words delivered, %d dropped\n", res.Cycles, len(res.Delivered), res.Dropped)
}

func (a *app) wrapperCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "wrapper",
		Short: "Render the Tiny Tapeout Verilog wrapper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := a.cfg.LedDesign()
			// check that the design fits in a tile.
			if _, err := tt.Wrapper(a.cfg.Project.TopModule, d); err != nil {
				return err
			}
			if out == "" || out == "-" {
				return tt.Render(cmd.OutOrStdout(), a.cfg.Project, d)
			}
			f, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "create wrapper file")
			}
			if err := tt.Render(f, a.cfg.Project, d); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "close wrapper file")
			}
			a.log.Info().Str("file", out).Str("module", a.cfg.Project.TopModule).Msg("wrapper generated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) blinkyCmd() *cobra.Command {
	var cycles, bits int
	cmd := &cobra.Command{
		Use:   "blinky",
		Short: "Run the blinking LED demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := blinky.New(bits)
			if err != nil {
				return err
			}
			var led, prev bool
			c, err := hwsim.NewCircuit(a.cfg.Sim.Workers, a.cfg.Sim.StepsPerCycle,
				b("led=led"),
				hwlib.Output(func(v bool) { led = v })("in=led"),
			)
			if err != nil {
				return err
			}
			defer c.Dispose()
			toggles := 0
			_, err = c.Run(cmd.Context(), cycles, func(i int) bool {
				if led != prev {
					toggles++
					prev = led
					a.log.Debug().Int("cycle", i).Bool("led", led).Msg("toggle")
				}
				return true
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cycles, %d toggles, led %s\n", cycles, toggles, lo.Ternary(led, "on", "off"))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&cycles, "cycles", 1<<blinky.Bits, "number of clock cycles to run")
	f.IntVar(&bits, "bits", blinky.Bits, "counter size")
	return cmd
}

func main() {
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.ConfigureRuntime()
		l := logging.Logger()
		l.Error().Err(err).Msg("ledspi failed")
		os.Exit(1)
	}
}
