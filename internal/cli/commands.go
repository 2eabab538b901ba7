package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/duetoday/internal/due"
	"github.com/sandeepkv93/duetoday/internal/model"
	"github.com/sandeepkv93/duetoday/internal/storage"
	"github.com/sandeepkv93/duetoday/internal/tracker"
	"github.com/sandeepkv93/duetoday/internal/views"
	"github.com/spf13/cobra"
)

var errNeedsInit = fmt.Errorf("%w: run `duetoday init` or open the interactive checklist first", tracker.ErrNotReady)

func (a *App) newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's due tasks grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.tracker.TodayTasks()
			if err != nil {
				return errNeedsInit
			}
			today := s.tracker.Today()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, ISO week %d)\n", today, today.Weekday(), today.ISOWeek())
			fmt.Fprint(out, views.RenderDueSections(dueSections(tasks), false))
			return nil
		},
	}
}

func (a *App) newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task-key>...",
		Short: "Record periodic tasks as completed",
		Long: `Record periodic tasks as completed on a day (today by default).

Daily and weekly task keys are accepted and ignored; they are never stored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawDate, _ := cmd.Flags().GetString("date")
			var day model.Date
			if strings.TrimSpace(rawDate) != "" {
				d, err := model.ParseDate(rawDate)
				if err != nil {
					return err
				}
				day = d
			}

			s, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()
			if s.tracker.Phase() != tracker.PhaseReady {
				return errNeedsInit
			}
			if day.IsZero() {
				day = s.tracker.Today()
			}
			if err := s.tracker.RecordCompletions(cmd.Context(), args, day); err != nil {
				return err
			}

			var recorded, ignored []string
			catalog := s.tracker.Catalog()
			for _, key := range args {
				if def, ok := catalog.Lookup(key); ok && def.IsPeriodic() {
					recorded = append(recorded, key)
				} else {
					ignored = append(ignored, key)
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "recorded %d periodic task(s) on %s\n", len(recorded), day)
			if len(ignored) > 0 {
				fmt.Fprintf(out, "ignored (not periodic): %s\n", strings.Join(ignored, ", "))
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "completion day as YYYY-MM-DD (default today)")
	return cmd
}

func (a *App) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set when each periodic task was last done",
		Long: `Initialize the record without the interactive screen.

Every periodic task defaults to "done today" and every biweekly rotation to
"runs this week"; flags override individual answers:

  duetoday init --days-ago red_small_mine=1 --rotation dragon_nest=next`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			daysAgo, _ := cmd.Flags().GetStringArray("days-ago")
			rotations, _ := cmd.Flags().GetStringArray("rotation")
			force, _ := cmd.Flags().GetBool("force")

			s, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			choices := s.tracker.DefaultChoices()
			if err := applyDaysAgo(choices, daysAgo); err != nil {
				return err
			}
			if err := applyRotations(choices, s.tracker.Catalog(), rotations); err != nil {
				return err
			}
			if err := choices.Validate(s.tracker.Catalog()); err != nil {
				return err
			}

			if s.tracker.Phase() == tracker.PhaseReady {
				if !force {
					return errors.New("already initialized (use --force to overwrite)")
				}
				s.tracker.Reset()
			}
			st, err := s.tracker.Initialize(cmd.Context(), choices)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %d periodic task(s), week %d\n", len(st.Completions), s.tracker.ISOWeek())
			return nil
		},
	}
	cmd.Flags().StringArray("days-ago", nil, "task=N, days since the task was last done (repeatable)")
	cmd.Flags().StringArray("rotation", nil, "rotation=this|next, whether it runs this week (repeatable)")
	cmd.Flags().Bool("force", false, "overwrite an existing record")
	return cmd
}

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show each periodic task's last completion and next due day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			statuses, err := s.tracker.PeriodicStatuses()
			if err != nil {
				return errNeedsInit
			}
			rows := make([]views.StatusRowData, 0, len(statuses))
			for _, ps := range statuses {
				row := views.StatusRowData{
					Name:  ps.Def.Name,
					Cycle: ps.Def.CycleDays(),
					Due:   ps.Due,
				}
				if ps.HasRecord {
					row.Last = ps.Last.String()
					row.NextDue = ps.NextDue.String()
				}
				rows = append(rows, row)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, views.RenderStatusTable(rows))

			st := s.tracker.State()
			week := s.tracker.ISOWeek()
			for _, key := range model.AnchorKeys() {
				anchor, ok := st.Anchor(key)
				if !ok {
					fmt.Fprintf(out, "%s: not set\n", model.AnchorLabel(key))
					continue
				}
				active := "off"
				if due.RotationActive(anchor, week) {
					active = "on"
				}
				fmt.Fprintf(out, "%s: anchor week %d, week %d %s\n", model.AnchorLabel(key), anchor, week, active)
			}
			return nil
		},
	}
}

func (a *App) newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			s, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()
			if s.tracker.Phase() != tracker.PhaseReady {
				return errNeedsInit
			}

			var raw []byte
			switch strings.ToLower(format) {
			case "json":
				raw, err = storage.EncodeJSON(s.tracker.State())
			case "yaml", "yml":
				raw, err = storage.EncodeYAML(s.tracker.State())
			default:
				return fmt.Errorf("unknown format %q: must be json or yaml", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	cmd.Flags().String("format", "json", "output format: json or yaml")
	return cmd
}

func dueSections(tasks []due.Task) []views.TodaySectionData {
	grouped := due.Group(tasks)
	out := make([]views.TodaySectionData, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		items := make([]views.TodayItemData, 0, len(grouped[cat]))
		for _, t := range grouped[cat] {
			items = append(items, views.TodayItemData{Key: t.Key, Title: t.Name})
		}
		out = append(out, views.TodaySectionData{Title: cat.Title(), Items: items})
	}
	return out
}

func splitAssignment(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("%w: expected key=value, got %q", tracker.ErrInvalidChoice, raw)
	}
	return key, value, nil
}

func applyDaysAgo(choices tracker.InitChoices, pairs []string) error {
	for _, raw := range pairs {
		key, value, err := splitAssignment(raw)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: days ago for %q must be a number, got %q", tracker.ErrInvalidChoice, key, value)
		}
		choices.DaysAgo[key] = n
	}
	return nil
}

// applyRotations accepts either the anchor key or the event's task key, so
// dragon_nest and dragon_nest_start_week name the same rotation.
func applyRotations(choices tracker.InitChoices, catalog model.Catalog, pairs []string) error {
	for _, raw := range pairs {
		key, value, err := splitAssignment(raw)
		if err != nil {
			return err
		}
		if def, ok := catalog.Lookup(key); ok && def.Cadence.Kind == model.CadenceBiweekly {
			key = def.Cadence.AnchorKey
		}
		choice, err := tracker.ParseRotationChoice(value)
		if err != nil {
			return err
		}
		choices.Rotations[key] = choice
	}
	return nil
}
