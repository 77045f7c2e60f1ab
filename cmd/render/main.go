package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/host"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/config"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/logging"
	"github.com/GriffinCanCode/framewidget/internal/manifest"
	"github.com/GriffinCanCode/framewidget/internal/shared/id"
	"github.com/GriffinCanCode/framewidget/internal/shell"
	"github.com/GriffinCanCode/framewidget/internal/widget"
)

func main() {
	paramsPath := flag.String("params", "", "Parameter file (.yaml, .yml, .toml or .json)")
	shellSource := flag.String("shell", "", "Page to mount the widget into: file path or http(s) URL (default: built-in page)")
	selector := flag.String("selector", "", "CSS selector or XPath of the mount point in the page")
	expand := flag.Bool("expand", false, "Render the widget expanded over the viewport")
	summary := flag.Bool("summary", false, "Print the widget summary as JSON instead of the page")
	batchDir := flag.String("dir", "", "Render every parameter file under this directory")
	batchGlob := flag.String("glob", "**/*", "Files to render with -dir, relative to it")
	outDir := flag.String("out", "", "Output directory for -dir (required with -dir)")
	verbose := flag.Bool("v", false, "Log widget lifecycle events to stderr")
	flag.Parse()

	ctx := context.Background()

	logger := logging.NewNop()
	if *verbose {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       "debug",
			Development: true,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.LoadOrDefault()
	if *selector != "" {
		cfg.Widget.MountSelector = *selector
	}
	if *shellSource != "" {
		cfg.Widget.ShellSource = *shellSource
	}
	if cfg.Widget.ShellSource != "" {
		page, err := shell.NewLoader(shell.DefaultOptions(), logger.Named("shell")).Load(ctx, cfg.Widget.ShellSource)
		if err != nil {
			log.Fatalf("Failed to load page shell: %v", err)
		}
		cfg.Widget.PageShell = page
	}

	frameCfg := cfg.Widget.Frame()
	manager := host.NewManager(func(l *zap.Logger) control.Control {
		return widget.New(frameCfg).WithLogger(l)
	}, host.Options{
		PageShell:     cfg.Widget.PageShell,
		MountSelector: cfg.Widget.MountSelector,
	}, logger)
	defer manager.Close()

	if *batchDir != "" {
		if *outDir == "" {
			log.Fatal("-out is required with -dir")
		}
		n, err := renderBatch(ctx, manager, *batchDir, *batchGlob, *outDir, *expand, *summary)
		log.Printf("Rendered %d widgets into %s", n, *outDir)
		if err != nil {
			log.Fatalf("Batch render failed: %v", err)
		}
		return
	}

	params := control.Parameters{}
	if *paramsPath != "" {
		loaded, err := manifest.Load(*paramsPath)
		if err != nil {
			log.Fatalf("Failed to load parameters: %v", err)
		}
		params = loaded
	}

	out, err := render(manager, params, *expand, *summary)
	if err != nil {
		log.Fatalf("Failed to render widget: %v", err)
	}
	fmt.Println(out)
}

// render mounts one widget, optionally expands it, and returns the page or
// its summary. Expansion is skipped when the parameters disable the expand
// control. The widget is destroyed before returning.
func render(manager *host.Manager, params control.Parameters, expand, asSummary bool) (string, error) {
	sum, err := manager.Mount(params)
	if err != nil {
		return "", err
	}
	wid, err := id.ParseWidgetID(sum.ID)
	if err != nil {
		return "", err
	}
	defer func() { _ = manager.Destroy(wid) }()

	if expand && sum.Controls[widget.ControlExpand] {
		if sum, _, err = manager.Activate(wid, widget.ControlExpand); err != nil {
			return "", fmt.Errorf("failed to expand: %w", err)
		}
	}

	if asSummary {
		data, err := sonic.ConfigStd.MarshalIndent(sum, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return manager.Document(wid)
}

// renderBatch renders every parameter file under dir matching glob into
// outDir, mirroring the directory layout. A file that fails is reported and
// the rest are still rendered; the count is of files written.
func renderBatch(ctx context.Context, manager *host.Manager, dir, glob, outDir string, expand, asSummary bool) (int, error) {
	files, err := manifest.Discover(ctx, dir, glob)
	if err != nil {
		return 0, err
	}

	ext := ".html"
	if asSummary {
		ext = ".json"
	}

	var (
		written int
		errs    []error
	)
	for _, file := range files {
		if err := renderFile(manager, dir, file, outDir, ext, expand, asSummary); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}

func renderFile(manager *host.Manager, dir, file, outDir, ext string, expand, asSummary bool) error {
	params, err := manifest.Load(file)
	if err != nil {
		return err
	}
	out, err := render(manager, params, expand, asSummary)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return err
	}
	target := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+ext)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(out), 0o644)
}
