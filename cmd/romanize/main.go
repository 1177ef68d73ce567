// romanize writes the Latin spelling of Hangul text. It reads the files
// named on the command line, or stdin when there are none, and romanizes
// each line on its own.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangultools/internal/logger"
	"github.com/jusunglee/hangultools/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const maxLineBytes = 1 << 20

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	systemNames := lo.Map(transliteration.Systems(), func(s transliteration.System, _ int) string {
		return s.String()
	})

	fs := ff.NewFlagSet("romanize")
	var (
		systemName  = fs.StringLong("system", transliteration.DefaultSystem.String(), "Romanization system: "+strings.Join(systemNames, ", "))
		initial     = fs.StringEnumLong("initial", "Context of the first Hangul run on each line", "initial", "voiced")
		composeJamo = fs.BoolLong("compose-jamo", "Compose conjoining jamo into syllables first")
		logLevel    = fs.StringLong("log-level", "info", "Log level (debug, info, warn, error)")
		logFormat   = fs.StringEnumLong("log-format", "Log format", "pretty", "json")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("ROMANIZE")); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New(stderr, *logFormat, logger.ParseLevel(*logLevel))
	slog.SetDefault(log)

	system, err := transliteration.ParseSystem(*systemName)
	if err != nil {
		return err
	}
	// Surface a broken table before writing anything.
	if _, err := transliteration.LoadTable(system); err != nil {
		return fmt.Errorf("loading rule table: %w", err)
	}

	opts := []transliteration.Option{transliteration.WithSystem(system)}
	if *initial == "voiced" {
		opts = append(opts, transliteration.WithInitial(transliteration.Voiced))
	}
	if *composeJamo {
		opts = append(opts, transliteration.WithComposedJamo())
	}

	files := fs.GetArgs()
	log.DebugContext(ctx, "romanizing", "system", system, "initial", *initial, "files", len(files))

	if len(files) == 0 {
		n, err := romanizeLines(ctx, stdin, stdout, opts)
		if err != nil {
			return fmt.Errorf("romanizing stdin: %w", err)
		}
		log.DebugContext(ctx, "romanized stdin", "lines", n)
		return nil
	}

	outputs := make([][]byte, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			var buf bytes.Buffer
			n, err := romanizeLines(gctx, f, &buf, opts)
			if err != nil {
				return fmt.Errorf("romanizing %s: %w", path, err)
			}
			outputs[i] = buf.Bytes()
			log.DebugContext(gctx, "romanized file", "path", path, "lines", n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range outputs {
		if _, err := stdout.Write(out); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// romanizeLines romanizes r line by line into w and returns the number of
// lines written.
func romanizeLines(ctx context.Context, r io.Reader, w io.Writer, opts []transliteration.Option) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	bw := bufio.NewWriter(w)

	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return n, context.Cause(ctx)
		}
		out, err := transliteration.Romanize(sc.Text(), opts...)
		if err != nil {
			return n, err
		}
		bw.WriteString(out)
		bw.WriteByte('\n')
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading input: %w", err)
	}
	return n, bw.Flush()
}
