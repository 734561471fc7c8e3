// Package reportcli is the offline report tool. It runs the same list views
// the web app uses over the embedded demo portfolio and prints the stats
// and rows, so a filter can be checked without a database.
package reportcli

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rent360/rent360/internal/app/listviews"
	"github.com/rent360/rent360/internal/app/seed"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes the environment overrides, e.g. RENT360_REPORT_LOCALE.
const EnvPrefix = "RENT360_REPORT"

// NewRootCmd builds the rent360-report command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "rent360-report",
		Short:        "Run Rent360 list views over the demo portfolio",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("locale", "es", "BCP 47 locale for sorting names and titles")
	pf.String("now", "", "reference date (YYYY-MM-DD); defaults to today")

	root.AddCommand(newEntitiesCmd(out), newStatsCmd(v, out))
	return root
}

func newEntitiesCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the report entities",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, e := range listviews.Entities {
				if _, err := fmt.Fprintln(out, e); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

type statsCmd struct {
	v       *viper.Viper
	out     io.Writer
	filters []string
}

func newStatsCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	sc := &statsCmd{v: v, out: out}
	cmd := &cobra.Command{
		Use:       "stats <entity>",
		Short:     "Print stats and rows for one entity",
		Args:      cobra.ExactArgs(1),
		ValidArgs: listviews.Entities,
		RunE:      sc.run,
	}
	cmd.Flags().String("format", "table", "output format: table, json or csv")
	cmd.Flags().Int("rows", 10, "rows to print in table and json output (negative prints all)")
	cmd.Flags().StringArrayVar(&sc.filters, "filter", nil, "filter as key=value, e.g. status=overdue (repeatable)")
	return cmd
}

func (sc *statsCmd) run(_ *cobra.Command, args []string) error {
	opts, err := sc.viewOptions()
	if err != nil {
		return err
	}
	q, err := parseFilters(sc.filters)
	if err != nil {
		return err
	}

	d, err := seed.Load(opts.Now)
	if err != nil {
		return fmt.Errorf("load demo data: %w", err)
	}

	rep, err := listviews.BuildReport(d.Dataset(), args[0], q, opts)
	if errors.Is(err, listviews.ErrUnknownEntity) {
		return fmt.Errorf("unknown entity %q (want one of %s)", args[0], strings.Join(listviews.Entities, ", "))
	}
	if err != nil {
		return err
	}

	switch f := sc.v.GetString("format"); f {
	case "table":
		return writeTable(sc.out, rep, sc.v.GetInt("rows"))
	case "json":
		return writeJSON(sc.out, rep, sc.v.GetInt("rows"))
	case "csv":
		return writeCSV(sc.out, rep)
	default:
		return fmt.Errorf("unknown format %q (want table, json or csv)", f)
	}
}

// viewOptions reads the locale, reference date and attention thresholds.
// Thresholds keep their defaults unless set in the config file or env.
func (sc *statsCmd) viewOptions() (listviews.Options, error) {
	opts := listviews.DefaultOptions()

	locale, err := language.Parse(sc.v.GetString("locale"))
	if err != nil {
		return opts, fmt.Errorf("locale: %w", err)
	}
	opts.Locale = locale

	if s := sc.v.GetString("now"); s != "" {
		now, err := time.Parse(listviews.DateLayout, s)
		if err != nil {
			return opts, fmt.Errorf("now: %w", err)
		}
		opts.Now = now
	}

	for key, dst := range map[string]*time.Duration{
		"maintenance_attention_after": &opts.MaintenanceAttention,
		"ticket_attention_after":      &opts.TicketAttention,
		"payment_attention_after":     &opts.PaymentAttention,
	} {
		if sc.v.IsSet(key) {
			*dst = sc.v.GetDuration(key)
		}
	}
	return opts, nil
}

// parseFilters turns key=value pairs into query parameters. Repeating a
// key selects several values.
func parseFilters(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range pairs {
		k, val, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("filter %q: want key=value", p)
		}
		q.Add(k, val)
	}
	return q, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Output                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func limitRows(rows [][]string, n int) [][]string {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func statNames(rep listviews.Report) []string {
	names := make([]string, 0, len(rep.Stats))
	for name := range rep.Stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeTable(out io.Writer, rep listviews.Report, rows int) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s: %s of %s records", rep.Entity, format.Count(rep.Matched), format.Count(rep.Total))
	if rep.Filtered {
		fmt.Fprint(tw, " (filtered)")
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw)

	for _, name := range statNames(rep) {
		fmt.Fprintf(tw, "%s\t%s\n", name, format.Decimal(rep.Stats[name]))
	}

	shown := limitRows(rep.Rows, rows)
	if len(shown) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, strings.Join(rep.Header, "\t"))
		for _, row := range shown {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if len(shown) < len(rep.Rows) {
			fmt.Fprintf(tw, "... %d more\n", len(rep.Rows)-len(shown))
		}
	}
	return tw.Flush()
}

type jsonReport struct {
	Entity   string             `json:"entity"`
	Total    int                `json:"total"`
	Matched  int                `json:"matched"`
	Filtered bool               `json:"filtered"`
	Stats    map[string]float64 `json:"stats"`
	Header   []string           `json:"header"`
	Rows     [][]string         `json:"rows"`
}

func writeJSON(out io.Writer, rep listviews.Report, rows int) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Entity:   rep.Entity,
		Total:    rep.Total,
		Matched:  rep.Matched,
		Filtered: rep.Filtered,
		Stats:    rep.Stats,
		Header:   rep.Header,
		Rows:     limitRows(rep.Rows, rows),
	})
}

// writeCSV writes every matched row; --rows does not apply.
func writeCSV(out io.Writer, rep listviews.Report) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(rep.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(rep.Rows); err != nil {
		return err
	}
	return cw.Error()
}
