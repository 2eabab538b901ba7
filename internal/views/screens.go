package views

import (
	"fmt"
	"strings"
)

type TodayItemData struct {
	Key      string
	Title    string
	Checked  bool
	Selected bool
}

type TodaySectionData struct {
	Title string
	Items []TodayItemData
}

type TodayPanelData struct {
	Date         string
	Sections     []TodaySectionData
	Done         int
	Total        int
	ProgressView string
}

type InitRowData struct {
	Label    string
	Option   string
	Index    int
	Count    int
	Selected bool
}

type InitPanelData struct {
	Date         string
	Week         int
	TaskRows     []InitRowData
	RotationRows []InitRowData
	ConfirmAbort bool
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
	HelpView string
}

type TaskDetailData struct {
	Name     string
	Category string
	Location string
	Cadence  string
	Last     string
	NextDue  string
	Checked  bool
}

type StatusRowData struct {
	Name    string
	Cycle   int
	Last    string
	NextDue string
	Due     bool
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Date))
	b.WriteString("actions: [j/k]move [space]check [q]save+quit\n")
	b.WriteString(RenderDueSections(data.Sections, true))
	b.WriteString(fmt.Sprintf("\nprogress: %s %d/%d", data.ProgressView, data.Done, data.Total))
	return strings.TrimSpace(b.String())
}

// RenderDueSections lists each section under its title. With checkboxes off
// the output is the plain list the CLI prints.
func RenderDueSections(sections []TodaySectionData, checkboxes bool) string {
	var b strings.Builder
	for _, sec := range sections {
		title := fmt.Sprintf("%s:", sec.Title)
		if checkboxes {
			title = sectionStyle.Render(title)
		}
		b.WriteString("\n" + title + "\n")
		if len(sec.Items) == 0 {
			b.WriteString("  (none)\n")
			continue
		}
		for _, item := range sec.Items {
			if !checkboxes {
				b.WriteString(fmt.Sprintf("  - %s\n", item.Title))
				continue
			}
			b.WriteString(renderTodayItem(item) + "\n")
		}
	}
	return b.String()
}

func renderTodayItem(item TodayItemData) string {
	cursor := " "
	if item.Selected {
		cursor = cursorStyle.Render(">")
	}
	box := "[ ]"
	title := item.Title
	if item.Checked {
		box = "[x]"
		title = checkedStyle.Render(title)
	}
	return fmt.Sprintf("%s %s %s", cursor, box, title)
}

func RenderInitPanel(data InitPanelData) string {
	var b strings.Builder
	b.WriteString("首次使用初始化\n")
	b.WriteString(fmt.Sprintf("today: %s | ISO week: %d\n", data.Date, data.Week))
	b.WriteString("actions: [j/k]move [h/l]change [enter]save+start [ctrl+c]quit\n")
	b.WriteString("\n" + sectionStyle.Render("上次完成时间:") + "\n")
	for _, row := range data.TaskRows {
		b.WriteString(renderInitRow(row) + "\n")
	}
	b.WriteString("\n" + sectionStyle.Render("双周活动:") + "\n")
	for _, row := range data.RotationRows {
		b.WriteString(renderInitRow(row) + "\n")
	}
	if data.ConfirmAbort {
		b.WriteString("\n" + errorStyle.Render("您必须完成初始化才能使用程序。确定要退出吗？ [y/n]"))
	}
	return strings.TrimSpace(b.String())
}

func renderInitRow(row InitRowData) string {
	cursor := " "
	if row.Selected {
		cursor = cursorStyle.Render(">")
	}
	return fmt.Sprintf("%s %-12s < %s > (%d/%d)", cursor, row.Label, row.Option, row.Index+1, row.Count)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Screen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// TaskDetailMarkdown is the markdown shown in the detail pane.
func TaskDetailMarkdown(data TaskDetailData) string {
	if strings.TrimSpace(data.Name) == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", data.Name))
	b.WriteString(fmt.Sprintf("- **category**: %s\n", data.Category))
	b.WriteString(fmt.Sprintf("- **cadence**: %s\n", data.Cadence))
	if data.Location != "" {
		b.WriteString(fmt.Sprintf("- **location**: %s\n", data.Location))
	}
	if data.Last != "" {
		b.WriteString(fmt.Sprintf("- **last done**: %s\n", data.Last))
	}
	if data.NextDue != "" {
		b.WriteString(fmt.Sprintf("- **next due**: %s\n", data.NextDue))
	}
	if data.Checked {
		b.WriteString("\n_checked this session_\n")
	}
	return b.String()
}

func RenderDetailPane(view string) string {
	if strings.TrimSpace(view) == "" {
		return "detail:\n(no selection)"
	}
	return "detail:\n" + view
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

// RenderStatusTable prints one line per periodic task for the CLI.
func RenderStatusTable(rows []StatusRowData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-28s %5s  %-10s  %-10s  %s\n", "TASK", "CYCLE", "LAST", "NEXT", "DUE"))
	for _, row := range rows {
		last, next := row.Last, row.NextDue
		if last == "" {
			last = "-"
		}
		if next == "" {
			next = "-"
		}
		dueMark := ""
		if row.Due {
			dueMark = "yes"
		}
		b.WriteString(fmt.Sprintf("%-28s %4dd  %-10s  %-10s  %s\n", row.Name, row.Cycle, last, next, dueMark))
	}
	return b.String()
}
