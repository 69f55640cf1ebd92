package seating

import (
	"fmt"
	"sort"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// HallRange is the span of registration numbers seated in one room.
type HallRange struct {
	RoomNo uint16 `json:"room_no"`
	MinReg string `json:"min_reg_no"`
	MaxReg string `json:"max_reg_no"`
}

// String formats the range as "min-max".
func (h HallRange) String() string { return h.MinReg + "-" + h.MaxReg }

// ListingEntry is one printed line of the hall plan: where a section of a
// cohort sits for a session.
type ListingEntry struct {
	Date        string      `json:"date"`
	SlotNo      uint8       `json:"slot_no"`
	CourseCode  string      `json:"course_code"`
	Description string      `json:"description"`
	Halls       []HallRange `json:"halls"`
}

// Describe renders a cohort section as "<year> <degree> (<stream>) <section>",
// leaving out the stream when the programme has none.
func Describe(key model.CohortKey, section string) string {
	if key.Stream == model.NoStream {
		return fmt.Sprintf("%d %s %s", key.Year, key.Degree, section)
	}
	return fmt.Sprintf("%d %s (%s) %s", key.Year, key.Degree, key.Stream, section)
}

type listingKey struct {
	session model.Session
	cohort  model.CohortKey
	section string
}

// BuildListing groups assignments by session and cohort section, in the
// order they were emitted, and reports each room's registration number
// range.  Rooms are ordered by their lowest registration number.
func BuildListing(assignments []model.Assignment) []ListingEntry {
	type acc struct {
		entry ListingEntry
		halls map[uint16]*HallRange
	}
	index := make(map[listingKey]int)
	var accs []*acc
	for _, a := range assignments {
		k := listingKey{session: a.Session, cohort: a.Cohort, section: a.Section}
		i, ok := index[k]
		if !ok {
			i = len(accs)
			index[k] = i
			accs = append(accs, &acc{
				entry: ListingEntry{
					Date:        a.Session.DateString(),
					SlotNo:      a.Session.SlotNo,
					CourseCode:  a.CourseCode,
					Description: Describe(a.Cohort, a.Section),
				},
				halls: make(map[uint16]*HallRange),
			})
		}
		h, ok := accs[i].halls[a.RoomNo]
		if !ok {
			accs[i].halls[a.RoomNo] = &HallRange{RoomNo: a.RoomNo, MinReg: a.RegNo, MaxReg: a.RegNo}
			continue
		}
		if a.RegNo < h.MinReg {
			h.MinReg = a.RegNo
		}
		if a.RegNo > h.MaxReg {
			h.MaxReg = a.RegNo
		}
	}

	out := make([]ListingEntry, 0, len(accs))
	for _, a := range accs {
		halls := make([]HallRange, 0, len(a.halls))
		for _, h := range a.halls {
			halls = append(halls, *h)
		}
		sort.Slice(halls, func(i, j int) bool {
			if halls[i].MinReg != halls[j].MinReg {
				return halls[i].MinReg < halls[j].MinReg
			}
			return halls[i].RoomNo < halls[j].RoomNo
		})
		a.entry.Halls = halls
		out = append(out, a.entry)
	}
	return out
}

// FilterListing keeps entries for the given date and slot; an empty date
// or zero slot matches everything.
func FilterListing(entries []ListingEntry, date string, slotNo uint8) []ListingEntry {
	out := make([]ListingEntry, 0, len(entries))
	for _, e := range entries {
		if date != "" && e.Date != date {
			continue
		}
		if slotNo != 0 && e.SlotNo != slotNo {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SplitColumns orders a room's roster by seat and splits it into two
// print columns, the first taking the extra row when the count is odd.
func SplitColumns(records []model.AttendanceRecord) (left, right []model.AttendanceRecord) {
	sorted := make([]model.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SeatNo < sorted[j].SeatNo })
	mid := (len(sorted) + 1) / 2
	return sorted[:mid], sorted[mid:]
}
