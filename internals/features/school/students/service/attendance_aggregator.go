package service

import (
	"math"
	"strings"

	studentModel "schooldesk_backend/internals/features/school/students/model"
)

const (
	statusPresent = "present"
	statusAbsent  = "absent"
)

// SubjectAttendance is the per-subject bucket: counts plus the raw entries
// that fed them. Sessions counts only present/absent entries; anything else
// is kept in Entries but never counted.
type SubjectAttendance struct {
	Present  int                           `json:"present"`
	Absent   int                           `json:"absent"`
	Sessions int                           `json:"sessions"`
	Entries  []studentModel.AttendanceEntry `json:"entries"`
}

// GroupBySubject buckets attendance entries by subject label. Entries with
// no date or no status are skipped. The input is never mutated.
func GroupBySubject(entries []studentModel.AttendanceEntry) map[string]SubjectAttendance {
	grouped := make(map[string]SubjectAttendance)
	for _, e := range entries {
		if e.Date == nil || strings.TrimSpace(e.Status) == "" {
			continue
		}
		label := SubjectLabel(e)
		g := grouped[label]
		g.Entries = append(g.Entries, e)
		switch strings.ToLower(strings.TrimSpace(e.Status)) {
		case statusPresent:
			g.Present++
		case statusAbsent:
			g.Absent++
		}
		g.Sessions = g.Present + g.Absent
		grouped[label] = g
	}
	return grouped
}

// SubjectLabel resolves the display label for an entry's subject reference:
// the denormalized name when it survived, the raw id otherwise.
func SubjectLabel(e studentModel.AttendanceEntry) string {
	if name := strings.TrimSpace(e.SubjectName); name != "" {
		return name
	}
	return e.SubjectID.String()
}

// Percentage returns present/sessions*100 rounded to two decimals.
// Zero sessions is zero percent, not a division error.
func Percentage(present, sessions int) float64 {
	if sessions == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(sessions)*100*100) / 100
}

// OverallPercentage applies the same rule across all entries regardless of
// subject.
func OverallPercentage(entries []studentModel.AttendanceEntry) float64 {
	totalPresent, totalSessions := 0, 0
	for _, e := range entries {
		if e.Date == nil || strings.TrimSpace(e.Status) == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(e.Status)) {
		case statusPresent:
			totalPresent++
			totalSessions++
		case statusAbsent:
			totalSessions++
		}
	}
	return Percentage(totalPresent, totalSessions)
}
