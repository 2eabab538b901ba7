package views

import (
	"strings"
	"testing"
)

func TestRenderDueSectionsPlain(t *testing.T) {
	out := RenderDueSections([]TodaySectionData{
		{Title: "每日常规", Items: []TodayItemData{{Key: "arena", Title: "竞技场"}}},
		{Title: "每周事件"},
	}, false)
	for _, want := range []string{"每日常规:", "  - 竞技场", "每周事件:", "(none)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[ ]") {
		t.Fatalf("plain output must not carry checkboxes:\n%s", out)
	}
}

func TestRenderTodayPanelMarksChecked(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{
		Date: "2024-03-13",
		Sections: []TodaySectionData{{
			Title: "周期矿物",
			Items: []TodayItemData{
				{Key: "red_small_mine", Title: "红小矿", Checked: true, Selected: true},
				{Key: "rainbow_mine", Title: "彩矿"},
			},
		}},
		Done:  1,
		Total: 2,
	})
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "[ ] 彩矿") {
		t.Fatalf("unexpected checkbox rendering:\n%s", out)
	}
	if !strings.Contains(out, "1/2") {
		t.Fatalf("expected progress count:\n%s", out)
	}
}

func TestRenderInitPanelConfirm(t *testing.T) {
	out := RenderInitPanel(InitPanelData{
		Date:     "2024-03-13",
		Week:     11,
		TaskRows: []InitRowData{{Label: "红小矿", Option: "今天 (0天前)", Count: 3, Selected: true}},
		RotationRows: []InitRowData{
			{Label: "龙巢周期", Option: "本周开启", Count: 2},
		},
		ConfirmAbort: true,
	})
	for _, want := range []string{"ISO week: 11", "< 今天 (0天前) > (1/3)", "本周开启", "确定要退出吗"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in init panel:\n%s", want, out)
		}
	}
}

func TestTaskDetailMarkdown(t *testing.T) {
	if TaskDetailMarkdown(TaskDetailData{}) != "" {
		t.Fatal("expected empty markdown for no task")
	}
	md := TaskDetailMarkdown(TaskDetailData{
		Name:     "红小矿",
		Category: "周期矿物",
		Cadence:  "every 2 days",
		Location: "危险洞窟-赤色险地",
		Last:     "2024-03-10",
		NextDue:  "2024-03-12",
	})
	for _, want := range []string{"# 红小矿", "**location**: 危险洞窟-赤色险地", "**next due**: 2024-03-12"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, md)
		}
	}
}

func TestRenderStatusTable(t *testing.T) {
	out := RenderStatusTable([]StatusRowData{
		{Name: "红小矿", Cycle: 2, Last: "2024-03-10", NextDue: "2024-03-12", Due: true},
		{Name: "彩矿", Cycle: 3},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[1], "yes") {
		t.Fatalf("expected due marker on first row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "-") {
		t.Fatalf("expected placeholder for missing dates: %q", lines[2])
	}
}
