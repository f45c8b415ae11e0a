// Command matchcfg creates, inspects and rewrites match files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchtuner/internal/equalizer"
	"matchtuner/internal/settings"
	"matchtuner/internal/version"
	"matchtuner/internal/vision"
)

func main() {
	base := flag.String("base", "", "Match file base name (extension is appended)")
	load := flag.Bool("load", false, "Load an existing match file before applying overrides")
	save := flag.Bool("save", false, "Write the resulting configuration back to the match file")
	list := flag.Bool("list", false, "List the algorithm catalogs and exit")
	find := flag.String("find", "", "Find method override")
	tmatch := flag.String("tmatch", "", "Template matcher override")
	fdetect := flag.String("fdetect", "", "Feature detector override")
	fextract := flag.String("fextract", "", "Feature extractor override")
	fmatch := flag.String("fmatch", "", "Feature matcher override")
	verbose := flag.Bool("v", false, "Trace logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *showVersion {
		fmt.Printf("matchcfg %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *list {
		for _, c := range equalizer.Categories() {
			algs, _ := equalizer.Algorithms(c)
			fmt.Printf("%s:\n", c)
			for _, a := range algs {
				fmt.Printf("  %s\n", a)
			}
		}
		return
	}

	if (*load || *save) && *base == "" {
		fmt.Fprintln(os.Stderr, "Usage: matchcfg -base <name> [-load] [-save] [-find hybrid] ...")
		os.Exit(1)
	}

	eq, err := equalizer.NewDefault(vision.NewFactory(), settings.FindBackend())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build default configuration: %v\n", err)
		os.Exit(1)
	}

	if *load {
		if err := eq.LoadMatch(*base); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load match file: %v\n", err)
			os.Exit(1)
		}
	}

	overrides := equalizer.Selection{
		Find:           *find,
		TemplateMatch:  *tmatch,
		FeatureDetect:  *fdetect,
		FeatureExtract: *fextract,
		FeatureMatch:   *fmatch,
	}
	if err := eq.Configure(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply overrides: %v\n", err)
		os.Exit(1)
	}

	for _, c := range equalizer.Categories() {
		backend, _ := eq.Backend(c)
		fmt.Printf("[%s] backend=%s\n", c, backend)
		ps, _ := eq.Params(c)
		for _, name := range ps.Names() {
			p, _ := ps.Get(name)
			fmt.Printf("  %s = %s\n", name, p.Encode())
		}
	}

	if *save {
		if err := eq.SaveMatch(*base); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save match file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s.match\n", *base)
	}
}
