package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/atomicstack/assetgrid/internal/app"
	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/filter"
	"github.com/atomicstack/assetgrid/internal/folder"
	"github.com/atomicstack/assetgrid/internal/format/table"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type queryOptions struct {
	types      []string
	categories []string
	folder     string
	sort       string
	descending bool
	format     string
}

// state builds the filter the grid would apply for the same selections.
func (o queryOptions) state(terms []string) (*filter.State, error) {
	s := filter.NewState()
	key, ok := filter.ParseSortKey(o.sort)
	if !ok {
		return nil, fmt.Errorf("unknown sort key %q (want name or updated)", o.sort)
	}
	s.SortKey = key
	s.Descending = o.descending
	s.SetTypes(o.types...)
	s.SetCategories(o.categories...)
	s.SetFolder(o.folder)
	s.Query = strings.Join(terms, " ")
	return s, nil
}

func newQueryCmd() *cobra.Command {
	var opts queryOptions
	cmd := &cobra.Command{
		Use:   "query [terms...]",
		Short: "Print the catalog items matching a search",
		Long: `Print the items the grid would show for the given search terms and
facets. Every term must appear in the item name or its tags.

Example:
  assetgrid query --source ./catalog.json --type asset wood
  assetgrid query --folder props --sort updated --desc --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := opts.state(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			defer logging.Close()
			doc, err := app.NewClient(cfg.App).Load(cmd.Context())
			if err != nil {
				return err
			}
			return writeItems(cmd.OutOrStdout(), filter.Apply(doc.Items, state), opts.format)
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.types, "type", "t", nil, "only items of these types")
	flags.StringSliceVarP(&opts.categories, "category", "c", nil, "only items in these categories")
	flags.StringVarP(&opts.folder, "folder", "f", "", "only items at or below this folder")
	flags.StringVar(&opts.sort, "sort", string(filter.SortName), "sort key (name or updated)")
	flags.BoolVar(&opts.descending, "desc", false, "reverse the sort order")
	flags.StringVarP(&opts.format, "format", "o", formatTable, "output format (table, json or yaml)")
	return cmd
}

func writeItems(w io.Writer, items []*catalog.Item, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	case formatTable:
		rows := [][]string{{"NAME", "TYPE", "CATEGORY", "FOLDER", "VERSION", "UPDATED"}}
		for _, it := range items {
			rows = append(rows, []string{it.DisplayName, it.Type, it.Category, it.Dir(), it.LatestVersion, it.Updated})
		}
		for _, line := range table.Format(rows, nil) {
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
		_, err := fmt.Fprintf(w, "%s %s\n", humanize.Comma(int64(len(items))), plural(len(items), "item", "items"))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newTreeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the catalog folder hierarchy with item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			defer logging.Close()
			doc, err := app.NewClient(cfg.App).Load(cmd.Context())
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), folder.Build(doc.Items), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format (text, json or yaml)")
	return cmd
}

func writeTree(w io.Writer, tree *folder.Tree, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree.Outline())
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree.Outline()); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		rows := make([][]string, 0, tree.Len())
		tree.Walk(func(n *folder.Node, depth int) {
			rows = append(rows, []string{strings.Repeat("  ", depth) + n.Name, humanize.Comma(int64(n.Count))})
		})
		for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}) {
			fmt.Fprintln(w, line)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "assetgrid %s\n", buildVersion())
		},
	}
}

func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
