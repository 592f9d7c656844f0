package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// FormatStudentList renders all students as an aligned table.
func FormatStudentList(students []*domain.StudentProfile) string {
	if len(students) == 0 {
		return Dim("No students yet. Add one with: studyflow student add") + "\n"
	}

	headers := []string{"ID", "NAME", "LEARNER", "STRESS", "CAPACITY"}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			Dim(TruncID(s.ID)),
			StyleFg.Render(s.Name),
			string(s.LearnerType),
			string(s.Stress),
			FormatHours(s.DailyCapacity) + "/day",
		})
	}
	return RenderTable(headers, rows)
}

// FormatSubjectList renders a student's enrolled subjects as a table.
func FormatSubjectList(subjects []*domain.SubjectRecord) string {
	if len(subjects) == 0 {
		return Dim("No enrolled subjects.") + "\n"
	}

	headers := []string{"ID", "SUBJECT", "SCORE", "CONF", "DIFF", "CREDITS", "EXAM"}
	rows := make([][]string, 0, len(subjects))
	for _, r := range subjects {
		rows = append(rows, []string{
			Dim(TruncID(r.SubjectID)),
			StyleFg.Render(r.Name),
			scoreCell(r.Score),
			fmt.Sprintf("%.1f", r.Confidence),
			fmt.Sprintf("%.1f", r.Difficulty),
			fmt.Sprintf("%.1f", r.CreditWeight),
			FormatDays(r.DaysToExam),
		})
	}
	return RenderTable(headers, rows)
}

// FormatStudentDetail renders one profile with its subjects.
func FormatStudentDetail(student *domain.StudentProfile, subjects []*domain.SubjectRecord) string {
	var b strings.Builder

	b.WriteString(Header(student.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), student.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Learner type:"), string(student.LearnerType)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Stress level:"), string(student.Stress)))
	b.WriteString(fmt.Sprintf("%s %s per day\n", Dim("Capacity:"), FormatHours(student.DailyCapacity)))
	b.WriteString("\n")
	b.WriteString(FormatSubjectList(subjects))

	return b.String()
}

func scoreCell(score float64) string {
	text := fmt.Sprintf("%.0f", score)
	switch {
	case score < 60:
		return StyleRed.Render(text)
	case score < 75:
		return StyleYellow.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}
