package inactivity

import (
	"sort"
	"strconv"
	"strings"
)

const LeaveStatusApproved = "approved"

type Leave struct {
	Status    string
	StartDate int64
	EndDate   int64
}

// Candidate is a user joined with its last flight and leave requests, the
// in-memory counterpart of the row the SQL predicate sees.
type Candidate struct {
	ID         string
	Name       string
	Email      string
	Callsign   *int64
	Image      *string
	Verified   bool
	Banned     bool
	CreatedAt  int64
	LastFlight *int64
	Leaves     []Leave
}

// LastActivity is the last flight, or the creation time when the user never flew.
func (c Candidate) LastActivity() int64 {
	if c.LastFlight != nil {
		return *c.LastFlight
	}
	return c.CreatedAt
}

// OnLeave reports an approved leave whose closed interval contains Now.
func (t Timeframe) OnLeave(c Candidate) bool {
	for _, l := range c.Leaves {
		if l.Status == LeaveStatusApproved && l.StartDate <= t.Now && l.EndDate >= t.Now {
			return true
		}
	}
	return false
}

func (t Timeframe) IsInactive(c Candidate) bool {
	if !c.Verified || c.Banned {
		return false
	}
	if c.LastActivity() >= t.Cutoff {
		return false
	}
	return !t.OnLeave(c)
}

// MatchesSearch is a case-insensitive substring match on the name or on the
// airline prefix joined with the numeric callsign. Case folding is ASCII only.
func MatchesSearch(c Candidate, callsignPrefix, search string) bool {
	if search == "" {
		return true
	}
	needle := asciiLower(search)
	if strings.Contains(asciiLower(c.Name), needle) {
		return true
	}
	if c.Callsign == nil {
		return false
	}
	full := callsignPrefix + strconv.FormatInt(*c.Callsign, 10)
	return strings.Contains(asciiLower(full), needle)
}

func (c Candidate) ToInactiveUser() InactiveUser {
	return InactiveUser{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Callsign:   c.Callsign,
		Image:      c.Image,
		LastFlight: c.LastFlight,
	}
}

// Evaluate filters candidates to the inactive set and orders it by most
// recent flight first, then name, then id.
func Evaluate(candidates []Candidate, tf Timeframe, callsignPrefix, search string) []InactiveUser {
	result := make([]InactiveUser, 0, len(candidates))
	for _, c := range candidates {
		if tf.IsInactive(c) && MatchesSearch(c, callsignPrefix, search) {
			result = append(result, c.ToInactiveUser())
		}
	}
	SortInactive(result)
	return result
}

func SortInactive(users []InactiveUser) {
	sort.SliceStable(users, func(i, j int) bool {
		li, lj := lastFlightOrZero(users[i]), lastFlightOrZero(users[j])
		if li != lj {
			return li > lj
		}
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
}

// Paginate slices an ordered result. Total always reflects the full set.
func Paginate(users []InactiveUser, page, limit int) *Page {
	_, limit, offset := NormalizePage(page, limit)
	out := &Page{Users: []InactiveUser{}, Total: int64(len(users))}
	if offset >= len(users) {
		return out
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	out.Users = append(out.Users, users[offset:end]...)
	return out
}

func lastFlightOrZero(u InactiveUser) int64 {
	if u.LastFlight == nil {
		return 0
	}
	return *u.LastFlight
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}
