package service

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/testutil"
)

// stepClock returns FixedTime, advancing a minute per call.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{next: testutil.FixedTime, step: time.Minute}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

func newTestService(t *testing.T, opts ...ProposalServiceOption) (ProposalService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	opts = append([]ProposalServiceOption{WithClock(newStepClock().Now)}, opts...)
	return NewProposalService(testutil.NewTestUoW(database), opts...), database
}

// withLineCost returns a copy of p with the cost of line id replaced.
func withLineCost(p *domain.SavedProposal, id string, cost float64) *domain.SavedProposal {
	next := *p
	next.Snapshot.EquipmentLines = append([]domain.EquipmentLine(nil), p.Snapshot.EquipmentLines...)
	for i, l := range next.Snapshot.EquipmentLines {
		if l.ID == id {
			next.Snapshot.EquipmentLines[i].MonthlyCost = cost
		}
	}
	return &next
}
