package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/marcus/cardview/internal/cards"
	"github.com/marcus/cardview/internal/layout"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// arrangement is the output of the layout command.
type arrangement struct {
	Mode            string            `json:"mode" yaml:"mode"`
	Container       size              `json:"container" yaml:"container"`
	Columns         int               `json:"columns" yaml:"columns"`
	ScrollDirection string            `json:"scrollDirection" yaml:"scrollDirection"`
	PageSize        int               `json:"pageSize" yaml:"pageSize"`
	Content         size              `json:"content" yaml:"content"`
	Positions       []layout.Position `json:"positions" yaml:"positions"`
}

type size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type layoutOptions struct {
	width    int
	height   int
	mode     string
	format   string
	archived bool
}

func newLayoutCmd(root *rootOptions) *cobra.Command {
	opts := layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the card arrangement for a container size",
		Long: `Arrange the stored cards for a container of the given size and print the
computed positions. Auto-sized dimensions are reported as -1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root, opts.mode)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			store, err := cards.NewStore(cfg.Cards.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			notes, err := store.List(opts.archived || cfg.Cards.IncludeArchived)
			if err != nil {
				return err
			}
			cards.Sort(notes, cards.SortBy(cfg.Cards.SortBy))
			logger.Debug("arranging", "cards", len(notes), "width", opts.width, "height", opts.height)

			engine := layout.NewEngine(cfg.Layout.Engine(), slogger(logger))
			positions := engine.Arrange(cards.FromNotes(notes), float64(opts.width), float64(opts.height))
			cw, ch := engine.ContentSize()

			return writeArrangement(cmd.OutOrStdout(), opts.format, arrangement{
				Mode:            cfg.Layout.Mode,
				Container:       size{Width: float64(opts.width), Height: float64(opts.height)},
				Columns:         engine.ColumnsCount(),
				ScrollDirection: string(engine.ScrollDirection()),
				PageSize:        engine.PageSize(),
				Content:         size{Width: cw, Height: ch},
				Positions:       positions,
			})
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 80, "container width in cells")
	cmd.Flags().IntVar(&opts.height, "height", 24, "container height in cells")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "layout mode (grid, masonry, list)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "output format (yaml, json)")
	cmd.Flags().BoolVar(&opts.archived, "archived", false, "include archived cards")

	return cmd
}

func writeArrangement(w io.Writer, format string, a arrangement) error {
	if a.Positions == nil {
		a.Positions = []layout.Position{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
