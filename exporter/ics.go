package exporter

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"

	"afterschool-planner/scheduler"
)

// WriteICS writes the planned sessions as an iCalendar file so they can
// be imported into any calendar app.
func WriteICS(path string, sessions []scheduler.Session) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//afterschool-planner//EN")

	now := time.Now().UTC()
	for i, s := range sessions {
		start := s.Start.At(s.Date)
		end := s.End.At(s.Date)

		event := cal.AddEvent(sessionEventID(s))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("After-School Program - %s", s.School))
		event.SetDescription(fmt.Sprintf("Session %d. Dismissal: %s", i+1, s.Dismissal.Format()))
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// sessionEventID derives a stable UID from the session content so
// re-exports produce identical calendars.
func sessionEventID(s scheduler.Session) string {
	hash := md5.New()
	fmt.Fprintf(hash, "%s|%s|%s|%s", s.School, s.Date.Format("2006-01-02"), s.Start.Format(), s.End.Format())
	return hex.EncodeToString(hash.Sum(nil))
}
