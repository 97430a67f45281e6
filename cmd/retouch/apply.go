package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/imgio"
	"github.com/example/retouch/internal/script"
)

// applyCmd replays a YAML edit plan headlessly and writes the result.
type applyCmd struct {
	plan   string
	file   string
	output string
	*root
	fs *flag.FlagSet
}

func (a *applyCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	a := &applyCmd{root: r, fs: fs}
	fs.StringVar(&a.plan, "plan", "", "YAML edit plan to replay")
	fs.StringVar(&a.file, "file", "", "source image, overriding the plan's source")
	fs.StringVar(&a.output, "output", "", "output file path, overriding the plan's output")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if a.plan == "" {
		return nil, &UsageError{of: a}
	}
	return a, nil
}

func (a *applyCmd) Run() error {
	f, err := os.Open(a.plan)
	if err != nil {
		return fmt.Errorf("failed to open plan: %w", err)
	}
	plan, perr := script.Parse(f)
	f.Close()
	if perr != nil {
		return perr
	}

	source := a.file
	if source == "" {
		source = plan.Source
	}
	if source == "" {
		return fmt.Errorf("no source image: pass -file or set source in the plan")
	}
	output := a.output
	if output == "" {
		output = plan.Output
	}
	if output == "" {
		output = defaultOutput(source)
	}

	src, err := loadImageFn(source)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", source, err)
	}

	sess := editor.NewSession(
		editor.WithBrush(a.config.BrushStyle()),
		editor.WithTextStyle(a.config.TextStyle()),
	)
	if err := sess.Open(src); err != nil {
		return err
	}
	defer sess.Close()

	if err := script.Apply(sess, plan); err != nil {
		return fmt.Errorf("plan %s: %w", a.plan, err)
	}

	flat, err := sess.Save()
	if err != nil {
		return err
	}
	if err := imgio.Save(output, flat); err != nil {
		return err
	}
	if a.notifier != nil {
		a.notifier.Save(output, flat)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	return nil
}
