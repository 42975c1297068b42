package escrow

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type transferCall struct {
	to     string
	amount int64
}

type fakeTransfer struct {
	calls   []transferCall
	failFor map[string]error
}

func (f *fakeTransfer) Transfer(to string, amount int64) error {
	if err := f.failFor[to]; err != nil {
		return err
	}
	f.calls = append(f.calls, transferCall{to: to, amount: amount})
	return nil
}

const (
	testOwner   = "0xplatform"
	testCreator = "0xcreator"
	testAlice   = "0xalice"
	testBob     = "0xbob"
)

func newTestPlatform(t *testing.T, feeBps int64) (*Platform, *fakeClock, *fakeTransfer) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	transfer := &fakeTransfer{failFor: map[string]error{}}
	platform, err := New(testOwner, feeBps, clock.Now, transfer)
	if err != nil {
		t.Fatalf("new platform: %v", err)
	}
	return platform, clock, transfer
}

func mustCreate(t *testing.T, p *Platform, target int64, days int) int64 {
	t.Helper()
	id, err := p.CreateCampaign(testCreator, "Solar Farm", "Community solar installation", target, days)
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return id
}

func TestCreateCampaignAssignsSequentialIDs(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)

	for want := int64(1); want <= 3; want++ {
		id := mustCreate(t, platform, 1000, 30)
		if id != want {
			t.Fatalf("expected id %d, got %d", want, id)
		}
	}

	info, err := platform.GetCampaign(2)
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if info.ID != 2 || !info.IsActive || info.RaisedAmount != 0 {
		t.Fatalf("unexpected snapshot: %+v", info)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)

	tests := []struct {
		name        string
		title       string
		description string
		target      int64
		days        int
	}{
		{"empty title", "", "desc", 1000, 30},
		{"empty description", "title", "", 1000, 30},
		{"zero target", "title", "desc", 0, 30},
		{"zero duration", "title", "desc", 1000, 0},
		{"duration too long", "title", "desc", 1000, 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := platform.CreateCampaign(testCreator, tt.title, tt.description, tt.target, tt.days)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if stats := platform.Stats(); stats.TotalCampaigns != 0 {
		t.Fatalf("failed creations must not allocate ids, got %d", stats.TotalCampaigns)
	}
}

func TestCreateCampaignDeadlineIsImmutable(t *testing.T) {
	platform, clock, _ := newTestPlatform(t, 0)
	id := mustCreate(t, platform, 1000, 10)

	before, _ := platform.GetCampaign(id)
	wantDeadline := clock.Now().Add(10 * 24 * time.Hour)
	if !before.Deadline.Equal(wantDeadline) {
		t.Fatalf("expected deadline %v, got %v", wantDeadline, before.Deadline)
	}

	if err := platform.Contribute(id, testAlice, 500); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	clock.Advance(11 * 24 * time.Hour)
	if _, err := platform.Refund(id, testAlice); err != nil {
		t.Fatalf("refund: %v", err)
	}

	after, _ := platform.GetCampaign(id)
	if !after.Deadline.Equal(before.Deadline) || after.TargetAmount != before.TargetAmount {
		t.Fatalf("deadline or target changed: before %+v after %+v", before, after)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)
	mustCreate(t, platform, 1000, 30)

	for _, id := range []int64{0, -1, 2, 99} {
		if _, err := platform.GetCampaign(id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("id %d: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestContributeValidation(t *testing.T) {
	platform, clock, _ := newTestPlatform(t, 250)
	id := mustCreate(t, platform, 1000, 1)

	if err := platform.Contribute(id, testCreator, 100); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("self funding: expected ErrUnauthorized, got %v", err)
	}
	if err := platform.Contribute(id, testAlice, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero amount: expected ErrInvalidInput, got %v", err)
	}

	clock.Advance(24 * time.Hour)
	if err := platform.Contribute(id, testAlice, 100); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("past deadline: expected ErrInvalidState, got %v", err)
	}

	info, _ := platform.GetCampaign(id)
	if info.RaisedAmount != 0 || info.ContributorCount != 0 {
		t.Fatalf("failed contributions must not mutate state: %+v", info)
	}
}

func TestContributeRejectedWhenDeactivated(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)
	id := mustCreate(t, platform, 1000, 30)

	if err := platform.Deactivate(testOwner, id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := platform.Contribute(id, testAlice, 100); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestRaisedAmountMatchesLedgerSum(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)
	id := mustCreate(t, platform, 10000, 30)

	contributions := []struct {
		who    string
		amount int64
	}{
		{testAlice, 100},
		{testBob, 250},
		{testAlice, 50},
		{testBob, 1},
	}
	for _, c := range contributions {
		if err := platform.Contribute(id, c.who, c.amount); err != nil {
			t.Fatalf("contribute %s %d: %v", c.who, c.amount, err)
		}

		info, _ := platform.GetCampaign(id)
		campaign := platform.campaigns[id-1]
		if info.RaisedAmount != campaign.ledger.outstanding() {
			t.Fatalf("raised %d != ledger sum %d", info.RaisedAmount, campaign.ledger.outstanding())
		}
	}

	alice, _ := platform.ContributionOf(id, testAlice)
	if alice != 150 {
		t.Fatalf("expected alice balance 150, got %d", alice)
	}
	history, _ := platform.ContributionHistory(id)
	if len(history) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(history))
	}
}

func TestContributorSetDeduplicates(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)
	id := mustCreate(t, platform, 10000, 30)

	for i := 0; i < 5; i++ {
		if err := platform.Contribute(id, testAlice, 10); err != nil {
			t.Fatalf("contribute: %v", err)
		}
	}
	if err := platform.Contribute(id, testBob, 10); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	contributors, _ := platform.Contributors(id)
	if len(contributors) != 2 || contributors[0] != testAlice || contributors[1] != testBob {
		t.Fatalf("expected [alice bob], got %v", contributors)
	}
}

func TestDeactivateRequiresOwner(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)
	id := mustCreate(t, platform, 1000, 30)

	if err := platform.Deactivate(testAlice, id); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := platform.Deactivate(testOwner, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// idempotent
	if err := platform.Deactivate(testOwner, id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := platform.Deactivate(testOwner, id); err != nil {
		t.Fatalf("second deactivate: %v", err)
	}

	events := platform.DrainEvents()
	flips := 0
	for _, ev := range events {
		if ev.Type == EventCampaignStatusChanged {
			flips++
		}
	}
	if flips != 1 {
		t.Fatalf("expected one status change event, got %d", flips)
	}
}

func TestSetFeeRate(t *testing.T) {
	platform, _, _ := newTestPlatform(t, 250)

	if err := platform.SetFeeRate(testAlice, 100); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := platform.SetFeeRate(testOwner, 1001); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := platform.SetFeeRate(testOwner, 1000); err != nil {
		t.Fatalf("set fee rate: %v", err)
	}
	if got := platform.FeeRate(); got != 1000 {
		t.Fatalf("expected fee rate 1000, got %d", got)
	}
}

func TestStatsRecomputesActiveCount(t *testing.T) {
	platform, clock, _ := newTestPlatform(t, 250)

	short := mustCreate(t, platform, 1000, 1)
	mustCreate(t, platform, 1000, 30)
	deactivated := mustCreate(t, platform, 1000, 30)
	if err := platform.Deactivate(testOwner, deactivated); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	stats := platform.Stats()
	if stats.TotalCampaigns != 3 || stats.ActiveCount != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// the short campaign expires with no state-changing call in between
	clock.Advance(2 * 24 * time.Hour)
	stats = platform.Stats()
	if stats.ActiveCount != 1 {
		t.Fatalf("expected active count 1 after expiry, got %d", stats.ActiveCount)
	}
	if _, err := platform.GetCampaign(short); err != nil {
		t.Fatalf("expired campaign must remain readable: %v", err)
	}
}

func TestTotalRaisedIsLifetimeCounter(t *testing.T) {
	platform, clock, _ := newTestPlatform(t, 250)
	id := mustCreate(t, platform, 1000, 1)

	if err := platform.Contribute(id, testAlice, 400); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	clock.Advance(24 * time.Hour)
	if _, err := platform.Refund(id, testAlice); err != nil {
		t.Fatalf("refund: %v", err)
	}

	stats := platform.Stats()
	if stats.TotalRaised != 400 {
		t.Fatalf("refunds must not shrink lifetime total, got %d", stats.TotalRaised)
	}
	info, _ := platform.GetCampaign(id)
	if info.RaisedAmount != 0 {
		t.Fatalf("campaign raised amount must drop to 0, got %d", info.RaisedAmount)
	}
}

func TestDrainEventsSequence(t *testing.T) {
	platform, clock, _ := newTestPlatform(t, 0)
	id := mustCreate(t, platform, 500, 1)
	if err := platform.Contribute(id, testAlice, 500); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	clock.Advance(24 * time.Hour)
	if _, err := platform.Withdraw(id, testCreator); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	events := platform.DrainEvents()
	want := []string{
		EventCampaignCreated,
		EventContributionMade,
		EventFundsWithdrawn,
		EventCampaignStatusChanged,
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, ev := range events {
		if ev.Type != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], ev.Type)
		}
		if ev.CampaignID != id {
			t.Fatalf("event %d: expected campaign id %d, got %d", i, id, ev.CampaignID)
		}
	}

	if leftover := platform.DrainEvents(); len(leftover) != 0 {
		t.Fatalf("drain must clear the queue, got %d events", len(leftover))
	}
}

func TestNewPlatformValidation(t *testing.T) {
	transfer := &fakeTransfer{}
	if _, err := New("", 0, nil, transfer); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty owner: expected ErrInvalidInput, got %v", err)
	}
	if _, err := New(testOwner, 1001, nil, transfer); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("fee out of range: expected ErrInvalidInput, got %v", err)
	}
	if _, err := New(testOwner, 250, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("nil transfer: expected ErrInvalidInput, got %v", err)
	}
}
