package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vgskye/okcolor"
	"github.com/vgskye/okcolor/colorconv"
	"github.com/vgskye/okcolor/types"
)

var _ = fmt.Print

var verbose bool

func setup_logging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// parse_color accepts either a single hex color or three numeric components
func parse_color(args []string) (ans colorconv.Vec3, is_hex bool, err error) {
	switch len(args) {
	case 1:
		ans, err = okcolor.ParseHex(args[0])
		return ans, true, err
	case 3:
		for i, a := range args {
			if ans[i], err = strconv.ParseFloat(strings.TrimSpace(a), 64); err != nil {
				return ans, false, fmt.Errorf("invalid color component %q: %w", a, err)
			}
		}
		return
	}
	return ans, false, fmt.Errorf("expected a hex color or three components, got %d arguments", len(args))
}

func convert_cmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert [flags] (#rrggbb | c1 c2 c3)",
		Short: "Convert a color between color spaces",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, is_hex, err := parse_color(args)
			if err != nil {
				return err
			}
			src := okcolor.SRGB
			if !is_hex {
				if src, err = okcolor.ParseSpace(from); err != nil {
					return err
				}
			}
			dest, err := okcolor.ParseSpace(to)
			if err != nil {
				return err
			}
			slog.Debug("convert", "from", src, "to", dest, "value", v)
			ans, err := okcolor.ConvertSpace(v, src, dest)
			if err != nil {
				return err
			}
			srgb, err := okcolor.ToSRGB(ans, dest)
			if err != nil {
				return err
			}
			hex := okcolor.OklabFromSRGB(srgb).AsSharp()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.6f %.6f %.6f %s\n", dest, ans[0], ans[1], ans[2], hex)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "srgb", "Space of numeric input: "+strings.Join(types.SpaceNames(), ", "))
	cmd.Flags().StringVar(&to, "to", "oklch", "Space to convert to: "+strings.Join(types.SpaceNames(), ", "))
	return cmd
}

func adjust_cmd() *cobra.Command {
	var hue, chroma, lightness, saturation, value float64
	var workers int
	cmd := &cobra.Command{
		Use:   "adjust [flags] input output",
		Short: "Adjust the colors of an image or animation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []okcolor.AdjustOption
			flags := cmd.Flags()
			if flags.Changed("hue") {
				opts = append(opts, okcolor.HueShift(hue))
			}
			if flags.Changed("chroma") {
				opts = append(opts, okcolor.ChromaScale(chroma))
			}
			if flags.Changed("lightness") {
				opts = append(opts, okcolor.LightnessShift(lightness))
			}
			if flags.Changed("saturation") {
				opts = append(opts, okcolor.SaturationScale(saturation))
			}
			if flags.Changed("value") {
				opts = append(opts, okcolor.ValueScale(value))
			}
			if _, err := okcolor.FormatFromFilename(args[1]); err != nil {
				return fmt.Errorf("cannot save to %s: %w", args[1], err)
			}
			img, err := okcolor.OpenAll(args[0])
			if err != nil {
				return err
			}
			slog.Debug("loaded image", "path", args[0], "format", img.Format, "frames", len(img.Frames), "width", img.Width, "height", img.Height)
			if err = img.Apply(okcolor.NewAdjuster(opts...), okcolor.Workers(workers)); err != nil {
				return err
			}
			if err = img.Save(args[1]); err != nil {
				return err
			}
			slog.Info("saved image", "path", args[1])
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&hue, "hue", 0, "Rotate the OKLCh hue by this many degrees")
	f.Float64Var(&chroma, "chroma", 1, "Multiply OKLCh chroma by this factor")
	f.Float64Var(&lightness, "lightness", 0, "Add this to OKLCh lightness")
	f.Float64Var(&saturation, "saturation", 1, "Multiply OKHSV saturation by this factor")
	f.Float64Var(&value, "value", 1, "Multiply OKHSV value by this factor")
	f.IntVar(&workers, "workers", 0, "Number of goroutines to use, zero means one per CPU")
	return cmd
}

func gradient_cmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "gradient [flags] FROM TO",
		Short: "Print a gradient between two hex colors, interpolated in OKLCh",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ends [2]okcolor.Oklch
			for i, a := range args {
				v, err := okcolor.ParseHex(a)
				if err != nil {
					return err
				}
				ends[i] = okcolor.OklchFromSRGB(v)
			}
			for _, c := range okcolor.Gradient(ends[0], ends[1], steps) {
				fmt.Fprintln(cmd.OutOrStdout(), c.AsSharp(), c)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 5, "Number of colors, including both ends")
	return cmd
}

func root_cmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "okcolor",
		Short:         "Work with colors in the OKLAB family of color spaces",
		Version:       okcolor.Version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setup_logging()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.AddCommand(convert_cmd(), adjust_cmd(), gradient_cmd())
	return root
}

func main() {
	if err := root_cmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
