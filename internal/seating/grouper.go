package seating

import (
	"sort"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// SessionGroup holds the cohorts sitting one session, in allocation order.
type SessionGroup struct {
	Session model.Session
	Cohorts []model.Cohort
}

// StudentCount is the number of students sitting the session.
func (g SessionGroup) StudentCount() int {
	n := 0
	for _, c := range g.Cohorts {
		n += c.StudentCount()
	}
	return n
}

// GroupSessions partitions schedule rows by session and, within a session,
// by cohort.  Sessions are ordered by date then slot.  Cohorts are recorded
// the first time they appear when the session's rows are sorted by course
// code, so the cohort with the earliest course code is seated first.
func GroupSessions(rows []model.ScheduleRow) []SessionGroup {
	bySession := make(map[model.Session][]model.ScheduleRow)
	var sessions []model.Session
	for _, r := range rows {
		s := model.NewSession(r.Session.Date, r.Session.SlotNo)
		if _, ok := bySession[s]; !ok {
			sessions = append(sessions, s)
		}
		bySession[s] = append(bySession[s], r)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Before(sessions[j]) })

	groups := make([]SessionGroup, 0, len(sessions))
	for _, s := range sessions {
		groups = append(groups, SessionGroup{Session: s, Cohorts: groupCohorts(bySession[s])})
	}
	return groups
}

func groupCohorts(rows []model.ScheduleRow) []model.Cohort {
	sorted := make([]model.ScheduleRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CourseCode < sorted[j].CourseCode })

	index := make(map[model.CohortKey]int)
	var cohorts []model.Cohort
	for _, r := range sorted {
		key := model.CohortKey{Degree: r.Degree, Stream: model.StreamOrNone(r.Stream), Year: r.Year}
		i, ok := index[key]
		if !ok {
			i = len(cohorts)
			index[key] = i
			cohorts = append(cohorts, model.Cohort{Key: key})
		}
		cohorts[i].Sections = append(cohorts[i].Sections, model.Section{
			SectionID:  r.SectionID,
			Name:       r.Section,
			CourseCode: r.CourseCode,
			Students:   r.Students,
		})
	}
	return cohorts
}
