package helper

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/utils"
)

// Punch is one badge-reader event.
type Punch struct {
	ID        int
	BadgeTag  string
	Timestamp time.Time
	Date      string
	DeviceID  string
}

// PunchGroup is one badge's punches for one DTR day.
type PunchGroup struct {
	BadgeTag string
	Date     string
	From     time.Time
	To       time.Time
	Punches  []Punch
}

// ParsePunchCSV reads the badge-reader export: id,badge_tag,timestamp,device.
// offset shifts RFC3339 timestamps into the site's zone before the DTR day
// is assigned.
func ParsePunchCSV(r io.Reader, offset int) ([]Punch, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	loc := time.FixedZone("OFFSET", offset)

	var punches []Punch
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i, len(row))
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid ID: %w", i, err)
		}

		timestamp, err := time.Parse(time.RFC3339, row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}
		timestamp = timestamp.In(loc)

		punch := Punch{
			ID:        id,
			BadgeTag:  row[1],
			Timestamp: timestamp,
			Date:      utils.DTRDate(timestamp),
		}
		// Older reader firmware omits the device column.
		if len(row) > 3 {
			punch.DeviceID = row[3]
		}

		punches = append(punches, punch)
	}

	return punches, nil
}

// GroupPunches buckets punches by badge and DTR day, tracking the earliest
// and latest event per bucket.
func GroupPunches(punches []Punch) []PunchGroup {
	grouped := make(map[string]PunchGroup)
	var order []string

	for _, p := range punches {
		key := p.BadgeTag + "|" + p.Date
		g, exists := grouped[key]

		if !exists {
			order = append(order, key)
			grouped[key] = PunchGroup{
				BadgeTag: p.BadgeTag,
				Date:     p.Date,
				From:     p.Timestamp,
				To:       p.Timestamp,
				Punches:  []Punch{p},
			}
		} else {
			if p.Timestamp.Before(g.From) {
				g.From = p.Timestamp
			}
			if p.Timestamp.After(g.To) {
				g.To = p.Timestamp
			}
			g.Punches = append(g.Punches, p)
			grouped[key] = g
		}
	}

	groups := make([]PunchGroup, 0, len(order))
	for _, key := range order {
		g := grouped[key]
		sort.Slice(g.Punches, func(i, j int) bool {
			return g.Punches[i].Timestamp.Before(g.Punches[j].Timestamp)
		})
		groups = append(groups, g)
	}
	return groups
}

// BuildTimeLog turns one group into the day's imported log: first punch in,
// last punch out. A lone punch leaves the log open for the intern to close
// at the web clock. The ID is derived from badge and date so a re-sent file
// updates the same row instead of duplicating it.
func BuildTimeLog(group PunchGroup, userID uint) model.TimeLog {
	timeIn := group.From
	log := model.TimeLog{
		ID:      ImportLogID(group.BadgeTag, group.Date),
		UserID:  userID,
		Date:    group.Date,
		TimeIn:  &timeIn,
		LogType: model.LogTypeRegular,
		Source:  model.SourceImport,
	}
	if len(group.Punches) > 1 {
		timeOut := group.To
		log.TimeOut = &timeOut
	}
	if device := group.Punches[0].DeviceID; device != "" {
		log.DeviceID = device
	}
	return log
}

// ImportLogID is stable per badge/day across import runs.
func ImportLogID(badgeTag, date string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("punch|"+badgeTag+"|"+date)).String()
}
