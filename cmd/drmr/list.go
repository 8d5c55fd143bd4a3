// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ik5/drmr/config"
	"github.com/ik5/drmr/kit"
)

func runList(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	voices := fs.Bool("voices", false, "list the voices of every kit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog := scan(cfg)
	if len(catalog) == 0 {
		return fmt.Errorf("searched %s: %w", strings.Join(cfg.KitDirs, ", "), kit.ErrNoKits)
	}
	return printCatalog(os.Stdout, catalog, *voices, cfg.BaseNote)
}

func printCatalog(w io.Writer, catalog kit.Catalog, voices bool, baseNote int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tVOICES\tPATH")
	for i, e := range catalog {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i, e.Name, len(e.Voices), e.Path)
		if !voices {
			continue
		}
		for j, v := range e.Voices {
			fmt.Fprintf(tw, "\t  %d (note %d)\t%s\t\n", j, baseNote+j, v)
		}
	}
	return tw.Flush()
}
