// Package timezone pins every time the service produces or parses to a
// single application timezone.
//
// Booking intervals and court operating hours are wall-clock concepts: a
// court "open from 06:00 to 23:00" means 06:00 at the venue, not UTC. All
// time handling therefore goes through this package instead of the time
// package directly:
//
//	now := timezone.Now()
//	local := timezone.ToAppTime(someTime)
//	s := timezone.Format(t, "2006-01-02 15:04:05")
//	t, err := timezone.Parse("2006-01-02", "2026-01-01")
//	loc := timezone.GetLocation()
//
// The zone is set through the APP_TIMEZONE environment variable using IANA
// names ("UTC", "Asia/Ho_Chi_Minh", "Asia/Jakarta") and is initialized on
// package import.
package timezone
