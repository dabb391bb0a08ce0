// Package inactivitytest holds scenarios shared by the in-memory and SQL
// inactivity predicates so both are checked against the same expectations.
package inactivitytest

import (
	"fmt"

	"github.com/frahmantamala/airline-admin/internal/inactivity"
)

// Day converts a day number to unix seconds.
func Day(n int64) int64 { return n * 86400 }

func Int64(v int64) *int64 { return &v }

type Flight struct {
	Date   int64
	Status string
}

type User struct {
	ID        string
	Name      string
	Email     string
	Callsign  *int64
	Image     *string
	Verified  bool
	Banned    bool
	CreatedAt int64
	Flights   []Flight
	Leaves    []inactivity.Leave
}

// LastFlight is the latest flight of any status.
func (u User) LastFlight() *int64 {
	var last *int64
	for _, f := range u.Flights {
		if last == nil || f.Date > *last {
			d := f.Date
			last = &d
		}
	}
	return last
}

func (u User) Candidate() inactivity.Candidate {
	return inactivity.Candidate{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Callsign:   u.Callsign,
		Image:      u.Image,
		Verified:   u.Verified,
		Banned:     u.Banned,
		CreatedAt:  u.CreatedAt,
		LastFlight: u.LastFlight(),
		Leaves:     u.Leaves,
	}
}

type Scenario struct {
	Name string
	// Settings nil means the airline row does not exist.
	Settings *inactivity.Settings
	Now      int64
	Users    []User
	Search   string
	// Limit zero requests the full listing.
	Page  int
	Limit int

	WantIDs   []string
	WantTotal int64
}

func (s Scenario) Candidates() []inactivity.Candidate {
	out := make([]inactivity.Candidate, 0, len(s.Users))
	for _, u := range s.Users {
		out = append(out, u.Candidate())
	}
	return out
}

func pilot(id, name string, createdDay int64, flightDays ...int64) User {
	u := User{
		ID:        id,
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", id),
		Verified:  true,
		CreatedAt: Day(createdDay),
	}
	for _, d := range flightDays {
		u.Flights = append(u.Flights, Flight{Date: Day(d), Status: "approved"})
	}
	return u
}

func withLeave(u User, status string, start, end int64) User {
	u.Leaves = append(u.Leaves, inactivity.Leave{Status: status, StartDate: start, EndDate: end})
	return u
}

func withCallsign(u User, callsign int64) User {
	u.Callsign = Int64(callsign)
	return u
}

func settings(period int, callsign string) *inactivity.Settings {
	return &inactivity.Settings{InactivityPeriod: period, Callsign: callsign}
}

// Scenarios returns a fresh copy on every call.
func Scenarios() []Scenario {
	now := Day(100)

	banned := pilot("banned", "Banned Pilot", 1, 10)
	banned.Banned = true
	unverified := pilot("unverified", "Unverified Pilot", 1)
	unverified.Verified = false

	rejectedRecent := pilot("rejected-recent", "Rejected Recent", 1, 20)
	rejectedRecent.Flights = append(rejectedRecent.Flights, Flight{Date: Day(95), Status: "rejected"})

	pageUsers := []User{
		pilot("p1", "Pilot One", 1, 50),
		pilot("p2", "Pilot Two", 1, 40),
		pilot("p3", "Pilot Three", 1, 30),
		pilot("p4", "Pilot Four", 1, 20),
		pilot("p5", "Pilot Five", 1, 10),
		pilot("p6", "Pilot Six", 1, 99),
	}

	return []Scenario{
		{
			Name:     "day 100 with a 30 day period",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				pilot("a", "Alice", 1, 50),
				pilot("b", "Bob", 1, 95),
				withLeave(pilot("c", "Carol", 1, 10), "approved", Day(95), Day(105)),
				pilot("d", "Dave", 5),
			},
			WantIDs:   []string{"a", "d"},
			WantTotal: 2,
		},
		{
			Name:     "absent airline row uses the default period",
			Settings: nil,
			Now:      now,
			Users: []User{
				pilot("recent", "Recent", 1, 71),
				pilot("stale", "Stale", 1, 69),
			},
			WantIDs:   []string{"stale"},
			WantTotal: 1,
		},
		{
			Name:     "zero period falls back to the default",
			Settings: settings(0, "VA"),
			Now:      now,
			Users: []User{
				pilot("recent", "Recent", 1, 71),
				pilot("stale", "Stale", 1, 69),
			},
			WantIDs:   []string{"stale"},
			WantTotal: 1,
		},
		{
			Name:     "configured period moves the cutoff",
			Settings: settings(7, "VA"),
			Now:      now,
			Users: []User{
				pilot("week", "Week Ago", 1, 92),
				pilot("edge", "On The Cutoff", 1, 93),
				pilot("fresh", "Fresh", 1, 96),
			},
			WantIDs:   []string{"week"},
			WantTotal: 1,
		},
		{
			Name:     "only approved leave covering now suppresses inactivity",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				withLeave(pilot("approved", "Approved Leave", 1), "approved", now-1, now+1),
				withLeave(pilot("pending", "Pending Leave", 1), "pending", now-1, now+1),
				withLeave(pilot("denied", "Denied Leave", 1), "denied", now-1, now+1),
				withLeave(pilot("expired", "Expired Leave", 1), "approved", Day(80), now-1),
				withLeave(pilot("future", "Future Leave", 1), "approved", now+1, Day(120)),
			},
			WantIDs:   []string{"denied", "expired", "future", "pending"},
			WantTotal: 4,
		},
		{
			Name:     "leave boundaries are inclusive",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				withLeave(pilot("starts", "Starts Now", 1), "approved", now, Day(110)),
				withLeave(pilot("ends", "Ends Now", 1), "approved", Day(90), now),
				pilot("none", "No Leave", 1),
			},
			WantIDs:   []string{"none"},
			WantTotal: 1,
		},
		{
			Name:     "users without flights fall back to their creation time",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				pilot("old", "Old Member", 5),
				pilot("new", "New Member", 90),
				pilot("flew-before-joining", "Imported", 90, 10),
			},
			WantIDs:   []string{"flew-before-joining", "old"},
			WantTotal: 2,
		},
		{
			Name:     "banned and unverified users are never inactive",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				banned,
				unverified,
				pilot("regular", "Regular", 1, 10),
			},
			WantIDs:   []string{"regular"},
			WantTotal: 1,
		},
		{
			Name:     "last flight counts every status",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				rejectedRecent,
				pilot("old", "Old Flyer", 1, 20),
			},
			WantIDs:   []string{"old"},
			WantTotal: 1,
		},
		{
			Name:     "ties order by name then id",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				pilot("z2", "Zed", 1, 40),
				pilot("z1", "Zed", 1, 40),
				pilot("m", "Mia", 1, 40),
				pilot("never", "Aaron", 1),
				pilot("top", "Young", 1, 60),
			},
			WantIDs:   []string{"top", "m", "z1", "z2", "never"},
			WantTotal: 5,
		},
		{
			Name:      "last page returns the remainder with the full total",
			Settings:  settings(30, "VA"),
			Now:       now,
			Users:     pageUsers,
			Page:      3,
			Limit:     2,
			WantIDs:   []string{"p5"},
			WantTotal: 5,
		},
		{
			Name:      "first page",
			Settings:  settings(30, "VA"),
			Now:       now,
			Users:     pageUsers,
			Page:      1,
			Limit:     2,
			WantIDs:   []string{"p1", "p2"},
			WantTotal: 5,
		},
		{
			Name:      "page beyond the last returns nothing with the full total",
			Settings:  settings(30, "VA"),
			Now:       now,
			Users:     pageUsers,
			Page:      4,
			Limit:     2,
			WantIDs:   []string{},
			WantTotal: 5,
		},
		{
			Name:      "nothing inactive is an empty page",
			Settings:  settings(30, "VA"),
			Now:       now,
			Users:     []User{pilot("fresh", "Fresh", 1, 99)},
			Page:      1,
			Limit:     10,
			WantIDs:   []string{},
			WantTotal: 0,
		},
		{
			Name:     "search is case-insensitive on name and full callsign",
			Settings: settings(30, "SMI"),
			Now:      now,
			Users: []User{
				pilot("smith", "Smith", 1, 30),
				withCallsign(pilot("jones", "Jones", 1, 20), 42),
				pilot("brown", "Brown", 1, 10),
			},
			Search:    "smi",
			Page:      1,
			Limit:     10,
			WantIDs:   []string{"smith", "jones"},
			WantTotal: 2,
		},
		{
			Name:     "search matches the prefix joined with the callsign",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				withCallsign(pilot("c101", "First", 1, 30), 101),
				withCallsign(pilot("c202", "Second", 1, 20), 202),
				pilot("nocs", "No Callsign", 1, 10),
			},
			Search:    "va10",
			Page:      1,
			Limit:     10,
			WantIDs:   []string{"c101"},
			WantTotal: 1,
		},
		{
			Name:     "search treats LIKE wildcards literally",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				pilot("pct", "100% Pilot", 1, 30),
				pilot("plain", "1000 Pilot", 1, 20),
				pilot("under", "Under_score", 1, 10),
				pilot("space", "Under score", 1, 5),
			},
			Search:    "0%",
			Page:      1,
			Limit:     10,
			WantIDs:   []string{"pct"},
			WantTotal: 1,
		},
		{
			Name:     "underscore in search is literal",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				pilot("under", "Under_score", 1, 10),
				pilot("space", "Under score", 1, 5),
			},
			Search:    "r_s",
			Page:      1,
			Limit:     10,
			WantIDs:   []string{"under"},
			WantTotal: 1,
		},
		{
			Name:     "search only narrows the inactive set",
			Settings: settings(30, "VA"),
			Now:      now,
			Users: []User{
				pilot("smith-active", "Smith Active", 1, 99),
				pilot("smith-idle", "Smith Idle", 1, 10),
			},
			Search:    "SMITH",
			Page:      1,
			Limit:     10,
			WantIDs:   []string{"smith-idle"},
			WantTotal: 1,
		},
	}
}
