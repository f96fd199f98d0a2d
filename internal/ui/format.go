package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ritmoapp/ritmo/internal/conflict"
	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/task"
	"github.com/ritmoapp/ritmo/internal/view"
)

// PrintTaskRow prints a single task row with consistent formatting.
func PrintTaskRow(t *task.Task) {
	symbol := completionSymbol(t)
	title := t.Title
	if t.Completed {
		title = formatMuted(title)
	}
	fmt.Printf("  %s #%-3d %s-%s  %s  %s\n",
		symbol, t.ID, t.Time, t.EndTime(), formatCategory(t.Category), title)
}

// PrintDayStats prints the summary line below a day listing.
func PrintDayStats(s view.Stats) {
	fmt.Printf("%s | Planned: %s\n",
		formatStats(fmt.Sprintf("Done: %d/%d", s.Completed, s.Total)),
		FormatDuration(s.MinutesPlanned))
}

// PrintConflict reports a rejected placement and its suggested resolutions.
func PrintConflict(res *conflict.Result) {
	fmt.Println(formatWarn("Conflict: the requested slot is occupied."))
	for _, c := range res.Conflicts {
		fmt.Printf("  overlaps #%d %s-%s  %s\n", c.ID, c.Time, c.EndTime(), c.Title)
	}
	if len(res.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range res.Suggestions {
			switch s.Kind {
			case conflict.KindReschedule:
				fmt.Printf("  - reschedule to %s\n", s.Time)
			case conflict.KindShorten:
				fmt.Printf("  - shorten #%d to %s\n", s.TaskID, FormatDuration(s.NewDuration))
			case conflict.KindAlternative:
				fmt.Printf("  - try %s instead (good time for this category)\n", s.Time)
			}
		}
	}
	fmt.Println(formatMuted("\nRe-run with --force to schedule anyway."))
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// completionSymbol returns the status indicator for a task.
func completionSymbol(t *task.Task) string {
	if t.Completed {
		return formatStats("✓")
	}
	return "○"
}

// parseDateArg resolves a date flag. Accepts YYYY-MM-DD, relative words
// like "today" or "next monday", or empty for today.
func parseDateArg(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return dateutil.TruncateToDay(now), nil
	}
	if d, err := dateutil.ParseRelativeDate(s, now); err == nil {
		return d, nil
	}
	return dateutil.ParseDate(s)
}

// parseIDs parses one or more numeric task id arguments.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(arg string) (int64, error) {
	arg = strings.TrimPrefix(arg, "#")
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
