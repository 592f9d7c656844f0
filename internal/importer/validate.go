package importer

import (
	"fmt"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// ValidateRosterSchema checks the roster schema for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateRosterSchema(schema *RosterSchema) []error {
	var errs []error

	errs = append(errs, validateDefaults(schema.Defaults)...)

	studentRefs := make(map[string]bool)
	errs = append(errs, validateStudents(schema.Students, studentRefs)...)
	errs = append(errs, validateSubjects(schema.Subjects, studentRefs)...)
	errs = append(errs, validatePeerOutcomes(schema.PeerOutcomes)...)

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.LearnerType != "" && !domain.ValidLearnerTypes[d.LearnerType] {
		errs = append(errs, fmt.Errorf("defaults.learner_type: invalid value %q", d.LearnerType))
	}
	if d.StressLevel != "" && !domain.ValidStressLevels[d.StressLevel] {
		errs = append(errs, fmt.Errorf("defaults.stress_level: invalid value %q", d.StressLevel))
	}
	if d.DailyCapacity != nil && *d.DailyCapacity <= 0 {
		errs = append(errs, fmt.Errorf("defaults.daily_capacity_hours must be positive"))
	}
	if d.Confidence != nil && (*d.Confidence < 0 || *d.Confidence > 1) {
		errs = append(errs, fmt.Errorf("defaults.confidence must be within [0,1]"))
	}
	if d.CreditWeight != nil && *d.CreditWeight <= 0 {
		errs = append(errs, fmt.Errorf("defaults.credit_weight must be positive"))
	}

	return errs
}

func validateStudents(students []StudentImport, studentRefs map[string]bool) []error {
	var errs []error

	for i, s := range students {
		prefix := fmt.Sprintf("students[%d]", i)

		if s.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if studentRefs[s.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, s.Ref))
		} else {
			studentRefs[s.Ref] = true
		}

		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if s.LearnerType != "" && !domain.ValidLearnerTypes[s.LearnerType] {
			errs = append(errs, fmt.Errorf("%s.learner_type: invalid value %q", prefix, s.LearnerType))
		}
		if s.StressLevel != "" && !domain.ValidStressLevels[s.StressLevel] {
			errs = append(errs, fmt.Errorf("%s.stress_level: invalid value %q", prefix, s.StressLevel))
		}
		if s.DailyCapacity != nil && *s.DailyCapacity <= 0 {
			errs = append(errs, fmt.Errorf("%s.daily_capacity_hours must be positive", prefix))
		}
	}

	return errs
}

func validateSubjects(subjects []SubjectImport, studentRefs map[string]bool) []error {
	var errs []error

	subjectRefs := make(map[string]bool)
	perStudentNames := make(map[string]bool)

	for i, sub := range subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)

		if sub.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if subjectRefs[sub.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, sub.Ref))
		} else {
			subjectRefs[sub.Ref] = true
		}

		if sub.StudentRef == "" {
			errs = append(errs, fmt.Errorf("%s.student_ref is required", prefix))
		} else if !studentRefs[sub.StudentRef] {
			errs = append(errs, fmt.Errorf("%s.student_ref: ref %q not found in students", prefix, sub.StudentRef))
		}

		if sub.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if sub.StudentRef != "" {
			key := sub.StudentRef + "\x00" + canonicalSubject(sub.Name)
			if perStudentNames[key] {
				errs = append(errs, fmt.Errorf("%s: student %q already enrolled in %q", prefix, sub.StudentRef, sub.Name))
			}
			perStudentNames[key] = true
		}

		if sub.CurrentScore < 0 || sub.CurrentScore > 100 {
			errs = append(errs, fmt.Errorf("%s.current_score %.1f must be within [0,100]", prefix, sub.CurrentScore))
		}
		if sub.Confidence != nil && (*sub.Confidence < 0 || *sub.Confidence > 1) {
			errs = append(errs, fmt.Errorf("%s.confidence must be within [0,1]", prefix))
		}
		if sub.Difficulty < 0 {
			errs = append(errs, fmt.Errorf("%s.difficulty must not be negative", prefix))
		}
		if sub.CreditWeight != nil && *sub.CreditWeight <= 0 {
			errs = append(errs, fmt.Errorf("%s.credit_weight must be positive", prefix))
		}
		if sub.DaysRemaining < 0 {
			errs = append(errs, fmt.Errorf("%s.days_remaining must not be negative", prefix))
		}
		for j, score := range sub.ScoreHistory {
			if score < 0 || score > 100 {
				errs = append(errs, fmt.Errorf("%s.score_history[%d] %.1f must be within [0,100]", prefix, j, score))
			}
		}
	}

	return errs
}

func validatePeerOutcomes(outcomes []PeerOutcomeImport) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, o := range outcomes {
		prefix := fmt.Sprintf("peer_outcomes[%d]", i)

		if o.PeerID == "" {
			errs = append(errs, fmt.Errorf("%s.peer_id is required", prefix))
		}
		if o.Subject == "" {
			errs = append(errs, fmt.Errorf("%s.subject is required", prefix))
		}
		if o.PeerID != "" && o.Subject != "" {
			key := o.PeerID + "\x00" + canonicalSubject(o.Subject)
			if seen[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate outcome for peer %q subject %q", prefix, o.PeerID, o.Subject))
			}
			seen[key] = true
		}

		if o.CurrentScore < 0 || o.CurrentScore > 100 {
			errs = append(errs, fmt.Errorf("%s.current_score %.1f must be within [0,100]", prefix, o.CurrentScore))
		}
		if o.Confidence != nil && (*o.Confidence < 0 || *o.Confidence > 1) {
			errs = append(errs, fmt.Errorf("%s.confidence must be within [0,1]", prefix))
		}
		if o.HoursPerDay < 0 {
			errs = append(errs, fmt.Errorf("%s.hours_per_day must not be negative", prefix))
		}
		if o.Difficulty < 0 {
			errs = append(errs, fmt.Errorf("%s.difficulty must not be negative", prefix))
		}
		if o.DaysRemaining < 0 {
			errs = append(errs, fmt.Errorf("%s.days_remaining must not be negative", prefix))
		}
		if o.StressLevel != "" && !domain.ValidStressLevels[o.StressLevel] {
			errs = append(errs, fmt.Errorf("%s.stress_level: invalid value %q", prefix, o.StressLevel))
		}
	}

	return errs
}
