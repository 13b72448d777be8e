// FabricCut lays out fabric pieces on a cutting table, derives the cutting
// lines and writes the machine program.
//
// Usage:
//
//	fabriccut [flags] serve
//	fabriccut [flags] layout <disposition.json>
//	fabriccut [flags] gcode -name <job> [-pull] <disposition.json>
//	fabriccut [flags] export -format pdf|labels|dxf|xlsx|html -o <file> <disposition.json>
//
// Build:
//
//	go build -o fabriccut ./cmd/fabriccut
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/piwi3910/FabricCut/internal/catalog"
	"github.com/piwi3910/FabricCut/internal/engine"
	"github.com/piwi3910/FabricCut/internal/export"
	"github.com/piwi3910/FabricCut/internal/gcode"
	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/piwi3910/FabricCut/internal/pipeline"
	"github.com/piwi3910/FabricCut/internal/project"
	"github.com/piwi3910/FabricCut/internal/server"
)

var (
	configPath   = flag.String("config", project.DefaultConfigPath(), "application config file")
	profilesPath = flag.String("profiles", project.DefaultProfilesPath(), "custom machine profiles file")
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath, *profilesPath)
	if err != nil {
		klog.Exitf("%v", err)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "serve":
		err = serve(cfg)
	case "layout":
		err = layout(cfg, args)
	case "gcode":
		err = generate(cfg, args)
	case "export":
		err = exportLayout(cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		klog.Exitf("%s: %v", cmd, err)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] serve|layout|gcode|export [args]\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

// loadConfig reads the app config, resolving relative paths against the
// config file's directory, and registers the custom machine profiles.
func loadConfig(configPath, profilesPath string) (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	cfg = cfg.Resolve(filepath.Dir(configPath))

	profiles, err := project.LoadCustomProfiles(profilesPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	model.CustomProfiles = profiles
	klog.V(1).Infof("config %s, machine profile %q, %d custom profiles", configPath, cfg.MachineProfile, len(profiles))
	return cfg, nil
}

func newGenerator(cfg model.AppConfig) *gcode.Generator {
	return gcode.New(gcode.NewDirSnippets(cfg.SnippetDir, model.GetProfile(cfg.MachineProfile)))
}

func serve(cfg model.AppConfig) error {
	store, err := catalog.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	d := model.NewDisposition()
	cfg.ApplyToLayout(&d.Config)

	srv := server.New(cfg, project.NewWorkspace(d), store, newGenerator(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// runFile lays out the disposition stored at path.
func runFile(cfg model.AppConfig, path string) (pipeline.Result, error) {
	d, err := project.ImportDisposition(path)
	if err != nil {
		return pipeline.Result{}, err
	}
	return pipeline.Run(d.Input(), pipeline.Options{ReferenceLine: cfg.ReferenceLine})
}

func oneFile(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected one disposition file, got %d arguments", fs.NArg())
	}
	return fs.Arg(0), nil
}

func layout(cfg model.AppConfig, args []string) error {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}

	res, err := runFile(cfg, path)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Layout     model.LayoutOutput `json:"layout"`
		Vertical   []model.Line       `json:"vertical"`
		Horizontal []model.Line       `json:"horizontal"`
		Remnants   []model.Remnant    `json:"remnants"`
	}{res.Layout, res.Cuts.Vertical, res.Cuts.Horizontal, res.Remnants})
}

func generate(cfg model.AppConfig, args []string) error {
	fs := flag.NewFlagSet("gcode", flag.ExitOnError)
	name := fs.String("name", "", "job name, also the output file name")
	pull := fs.Bool("pull", cfg.PullFabric, "pull the fabric by the used length before cutting")
	fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}
	if err := gcode.ValidateJobName(*name); err != nil {
		return err
	}

	res, err := runFile(cfg, path)
	if err != nil {
		return err
	}
	out, err := pipeline.Export(newGenerator(cfg), cfg.GCodeDir(), res, pipeline.ExportOptions{Name: *name, PullFabric: *pull})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings() {
		klog.Warning(w)
	}

	project.AddRecentExport(&cfg, out, 10)
	if err := project.SaveAppConfig(*configPath, cfg); err != nil {
		klog.Warningf("failed to record recent export: %v", err)
	}
	fmt.Println(out)
	return nil
}

func exportLayout(cfg model.AppConfig, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "pdf", "pdf, labels, dxf, xlsx or html")
	output := fs.String("o", "", "output file")
	fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("-o is required")
	}

	res, err := runFile(cfg, path)
	if err != nil {
		return err
	}

	switch *format {
	case server.FormatPDF:
		return export.ExportPDF(*output, res.Layout, res.Cuts)
	case server.FormatLabels:
		return export.ExportLabels(*output, res.Layout, true)
	case server.FormatDXF:
		return export.ExportDXF(*output, res.Layout, res.Cuts)
	case server.FormatXLSX:
		return export.ExportCutList(*output, res.Layout, res.Cuts)
	case server.FormatHTML:
		d, err := project.ImportDisposition(path)
		if err != nil {
			return err
		}
		scenarios := engine.CompareScenarios(engine.BuildDefaultScenarios(d.Input()))
		return export.ExportReport(*output, res.Layout, res.Remnants, scenarios)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
