package update

import (
	"github.com/sandeepkv93/duetoday/internal/due"
	"github.com/sandeepkv93/duetoday/internal/model"
	"github.com/sandeepkv93/duetoday/internal/views"
)

func (m Model) renderTodayView() string {
	selected, _ := m.currentTodayItem()
	grouped := due.Group(m.Session.Tasks())
	sections := make([]views.TodaySectionData, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		items := make([]views.TodayItemData, 0, len(grouped[cat]))
		for _, t := range grouped[cat] {
			items = append(items, views.TodayItemData{
				Key:      t.Key,
				Title:    t.Name,
				Checked:  m.Session.Completed(t.Key),
				Selected: t.Key == selected.Key,
			})
		}
		sections = append(sections, views.TodaySectionData{Title: cat.Title(), Items: items})
	}
	done := len(m.Session.CompletedIDs())
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:         m.tracker.Today().String(),
		Sections:     sections,
		Done:         done,
		Total:        m.Session.Len(),
		ProgressView: m.progressBar.ViewAs(m.Session.Progress()),
	})
}

func (m Model) renderInitView() string {
	data := views.InitPanelData{
		Date:         m.tracker.Today().String(),
		Week:         m.tracker.ISOWeek(),
		ConfirmAbort: m.Form.ConfirmAbort,
	}
	for i, row := range m.Form.Rows {
		r := views.InitRowData{
			Label:    row.Label,
			Option:   row.Options[row.Index],
			Index:    row.Index,
			Count:    len(row.Options),
			Selected: i == m.Form.Cursor,
		}
		if row.Kind == InitRowRotation {
			data.RotationRows = append(data.RotationRows, r)
		} else {
			data.TaskRows = append(data.TaskRows, r)
		}
	}
	return views.RenderInitPanel(data)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) selectedDetailMarkdown() string {
	selected, ok := m.currentTodayItem()
	if !ok {
		return ""
	}
	def, ok := m.tracker.Catalog().Lookup(selected.Key)
	if !ok {
		return ""
	}
	data := views.TaskDetailData{
		Name:     def.DisplayName(),
		Category: def.Category.Title(),
		Location: def.Location,
		Cadence:  def.Cadence.String(),
		Checked:  m.Session.Completed(def.Key),
	}
	st := m.tracker.State()
	if last, ok := st.LastCompleted(def.Key); ok {
		data.Last = last.String()
	}
	if next, ok := due.NextDue(def, st); ok {
		data.NextDue = next.String()
	}
	return views.TaskDetailMarkdown(data)
}

func (m Model) renderDetailPane() string {
	if m.Screen != ScreenToday {
		return ""
	}
	return views.RenderDetailPane(m.detailView.View())
}

func (m *Model) syncBubbleData() {
	if m.Screen == ScreenToday {
		md := m.selectedDetailMarkdown()
		m.detailView.SetContent(views.RenderMarkdownWidth(md, m.detailView.Width))
	}
}
