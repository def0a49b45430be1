package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/chaosgame/chaos"
	"github.com/osuushi/chaosgame/internal/polyio"
	"github.com/osuushi/chaosgame/projective"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Plays the chaos game in a convex polygon and prints a summary. The polygon
// is read from a file or stdin, one vertex per line, as "x y z [colour]" or
// "(x:y:z) [colour]". With --svg, the first <polygon> of an svg document is
// used instead.
//
// The polygon must be convex. This is not validated.
func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err))
		os.Exit(1)
	}
}

type options struct {
	input    *os.File
	svg      bool
	frame    string
	relation float64
	count    int
	strategy string
	checker  string
	outside  bool
	seed     int64
	out      string
	size     int
	imgcat   bool
	dump     bool
	verbose  bool
}

func newApp(opts *options) *kingpin.Application {
	app := kingpin.New("chaosgame", "Chaos game fractals in a convex polygon of the projective plane.")
	app.Arg("polygon", "Polygon file. Reads stdin when omitted.").FileVar(&opts.input)
	app.Flag("svg", "Read the polygon from an svg document.").BoolVar(&opts.svg)
	app.Flag("frame", "Absolute conic of the plane.").Short('f').Default("elliptic").
		EnumVar(&opts.frame, "elliptic", "hyperbolic", "euclidean")
	app.Flag("relation", "Division relation.").Short('r').Default("1").Float64Var(&opts.relation)
	app.Flag("count", "Number of iterations.").Short('n').Default("10000").IntVar(&opts.count)
	app.Flag("strategy", "Vertex selection strategy.").Default("uniform").
		EnumVar(&opts.strategy, chaos.StrategyNames()...)
	app.Flag("checker", "Inclusion test.").Default("both").EnumVar(&opts.checker, "both", "buffered", "sign")
	app.Flag("outside", "Collect the companion points outside the polygon.").BoolVar(&opts.outside)
	app.Flag("seed", "Random seed. Zero seeds from the clock.").Int64Var(&opts.seed)
	app.Flag("out", "Write a PNG preview to this path.").Short('o').StringVar(&opts.out)
	app.Flag("size", "Preview size in pixels.").Default("800").IntVar(&opts.size)
	app.Flag("imgcat", "Show the preview inline (iTerm only).").BoolVar(&opts.imgcat)
	app.Flag("dump", "Print the samples, one \"x y #RRGGBB\" per line.").BoolVar(&opts.dump)
	app.Flag("verbose", "Debug logging on stderr.").Short('v').BoolVar(&opts.verbose)
	return app
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	if _, err := newApp(&opts).Parse(args); err != nil {
		return err
	}
	if opts.verbose {
		chaos.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var in io.Reader = stdin
	if opts.input != nil {
		defer opts.input.Close()
		in = opts.input
	}
	read := polyio.ReadVertices
	if opts.svg {
		read = polyio.ReadSVG
	}
	vertices, err := read(in)
	if err != nil {
		return errors.Wrap(err, "reading polygon")
	}

	cfg := chaos.DefaultConfig()
	cfg.Vertices = vertices
	cfg.Inside = !opts.outside
	cfg.Seed = opts.seed
	if cfg.Frame, err = projective.ParseFrame(opts.frame); err != nil {
		return err
	}
	if cfg.Strategy, err = chaos.ParseStrategy(opts.strategy); err != nil {
		return err
	}
	if cfg.Checker, err = chaos.ParseCheckerMode(opts.checker); err != nil {
		return err
	}

	engine, err := chaos.New(cfg)
	if err != nil {
		return err
	}
	raw, err := engine.Run(opts.count, opts.relation)
	if err != nil {
		return err
	}
	samples := engine.Clean(raw)

	fmt.Fprintf(stdout, "%s %d samples (%d accepted of %d) in the %s frame\n",
		aurora.Green("done"), samples.Len(), raw.Len(), opts.count, aurora.Bold(cfg.Frame))
	fmt.Fprintln(stdout, engine.Stats())

	if opts.dump {
		for i := range samples.Xs {
			fmt.Fprintf(stdout, "%v %v %s\n", samples.Xs[i], samples.Ys[i], chaos.HexColor(samples.Colors[i]))
		}
	}

	if opts.out == "" && opts.imgcat {
		opts.out = filepath.Join(os.TempDir(), "chaosgame.png")
	}
	if opts.out != "" {
		c := drawPreview(engine, cfg.Frame, samples, opts.size)
		if err := c.SavePNG(opts.out); err != nil {
			return errors.Wrap(err, "saving preview")
		}
		if opts.imgcat {
			return imgcat.CatFile(opts.out, stdout)
		}
	}
	return nil
}
