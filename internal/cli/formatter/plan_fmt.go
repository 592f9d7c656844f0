package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/studyflow/internal/contract"
)

// FormatPlan formats a PlanResponse into a styled CLI dashboard string.
func FormatPlan(resp *contract.PlanResponse) string {
	var b strings.Builder

	// Learner and stress indicators.
	b.WriteString(StylePurple.Render(fmt.Sprintf("LEARNER: %s", strings.ToUpper(string(resp.LearnerType)))))
	b.WriteString("  ")
	b.WriteString(StressIndicator(resp.Stress))
	b.WriteString("\n\n")

	b.WriteString(Header(fmt.Sprintf("Study Schedule (%s capacity)", FormatHours(resp.CapacityHours))))
	b.WriteString("\n\n")

	if len(resp.Entries) == 0 {
		b.WriteString(Dim("No subjects to schedule."))
		b.WriteString("\n")
	} else {
		for i, entry := range resp.Entries {
			b.WriteString(formatEntry(entry))
			if i < len(resp.Entries)-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(
		"%s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("Allocated: %s", FormatHours(resp.AllocatedHours))),
		StyleDim.Render("|"),
		StyleDim.Render(fmt.Sprintf("Cap: %s (%.0f%% of capacity)", FormatHours(resp.CappedHours), resp.CapFactor*100)),
	))

	if len(resp.PolicyMessages) > 0 {
		b.WriteString("\n")
		for _, msg := range resp.PolicyMessages {
			b.WriteString(Dim("  "+msg) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Plan %s · model %s", TruncID(resp.PlanID), TruncID(resp.ModelVersion))))
	b.WriteString("\n")

	return RenderBox("Study Plan", b.String())
}

func formatEntry(entry contract.ScheduleEntry) string {
	var b strings.Builder

	kindBadge := ""
	if entry.Kind == contract.EntryRevision {
		kindBadge = "  " + StyleBlue.Render("[revision]")
	}
	weakBadge := ""
	if entry.WeakArea {
		weakBadge = "  " + StyleRed.Render("WEAK AREA")
	}

	b.WriteString(fmt.Sprintf(
		"%s %s  %s%s%s\n",
		Bold(fmt.Sprintf("%d.", entry.Rank)),
		StyleFg.Render(entry.SubjectName),
		StyleBlue.Render(fmt.Sprintf("(%s)", FormatHours(entry.AllocatedHours))),
		kindBadge,
		weakBadge,
	))

	b.WriteString(fmt.Sprintf("   %s %s  %s\n",
		Dim("Mastery:"), MasteryBar(entry.Mastery, 10), MasteryIndicator(entry.MasteryLevel)))

	if entry.Kind == contract.EntryStudy {
		b.WriteString(fmt.Sprintf("   %s\n", Dim(fmt.Sprintf(
			"hybrid %.2f · ml %.2f (%s) · peers %.2f · content %.2f",
			entry.Scores.Hybrid,
			entry.Scores.MLNorm,
			FormatHours(entry.Scores.MLPredictedHours),
			entry.Scores.Collaborative,
			entry.Scores.Content,
		))))
	}

	if len(entry.Activities) > 0 {
		b.WriteString(fmt.Sprintf("   %s %s\n",
			Dim("Try:"), StyleFg.Render(strings.Join(entry.Activities, ", "))))
	}

	for _, reason := range entry.Reasons {
		b.WriteString(fmt.Sprintf("   %s %s\n",
			StyleYellow.Render("REASON:"), Dim(reason.Message)))
	}

	return b.String()
}

// FormatTrainResult formats a TrainResponse summary with the feature
// importance ranking.
func FormatTrainResult(resp *contract.TrainResponse) string {
	var b strings.Builder

	b.WriteString(Header("Model Trained"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Version:"), StyleFg.Render(resp.ModelVersion)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Trained:"), StyleFg.Render(resp.TrainedAt.Format("2006-01-02 15:04:05 MST"))))
	b.WriteString(fmt.Sprintf("%s %d rows, %d trees\n", Dim("Fit:"), resp.Rows, resp.Trees))

	if len(resp.Importance) > 0 {
		b.WriteString("\n")
		b.WriteString(Bold("Feature importance"))
		b.WriteString("\n")

		type feat struct {
			name  string
			value float64
		}
		feats := make([]feat, 0, len(resp.Importance))
		for name, v := range resp.Importance {
			feats = append(feats, feat{name, v})
		}
		sort.Slice(feats, func(i, j int) bool {
			if feats[i].value != feats[j].value {
				return feats[i].value > feats[j].value
			}
			return feats[i].name < feats[j].name
		})
		for _, f := range feats {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				StyleFg.Render(fmt.Sprintf("%-15s", f.name)),
				importanceBar(f.value)))
		}
	}

	return b.String()
}

func importanceBar(v float64) string {
	width := int(v*20 + 0.5)
	if width > 20 {
		width = 20
	}
	bar := strings.Repeat("█", width) + strings.Repeat("░", 20-width)
	return StyleBlue.Render(bar) + Dim(fmt.Sprintf(" %4.1f%%", v*100))
}
