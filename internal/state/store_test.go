package state

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/views"
)

// newTestStore returns a Store with a fixed clock and sequential ids.
func newTestStore(t *testing.T, initial domain.AppData) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	seq := 0
	s := NewStore(initial, Options{
		Now: func() time.Time { return now },
		NewID: func(prefix string) string {
			seq++
			return fmt.Sprintf("%s-%d", prefix, seq)
		},
		Operator: "Tester",
	})
	return s, &now
}

func TestAddWorkLogScenario(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{
		WorkLogs: []domain.WorkLog{
			{ID: "old", Date: "2025-06-01", Time: "08:00", Status: domain.StatusCompleted},
		},
	})

	log, snap := s.AddWorkLog(WorkLogInput{
		Date:            "2025-06-01",
		Time:            "09:00",
		Location:        "Pier 1",
		TaskDescription: "Check POS",
	})
	assert.Equal(t, "wl-1", log.ID)
	assert.Equal(t, "Tester", log.StaffName)
	assert.Equal(t, domain.StatusPending, log.Status)

	groups := views.WorkLogsByDate(snap.WorkLogs)
	require.Len(t, groups, 1)
	assert.Equal(t, log.ID, groups[0].Records[0].ID)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	f := views.DefaultFilter(now)
	before := views.Dashboard(snap, f, now)
	require.True(t, before.RecentLogs[0].Overdue)

	snap = s.SetWorkLogStatus(log.ID, domain.StatusCompleted)
	after := views.Dashboard(snap, f, now)
	assert.Equal(t, before.CompletedWorkLogs+1, after.CompletedWorkLogs)
	assert.False(t, after.RecentLogs[0].Overdue)
}

func TestAddPurchaseTicketComputesTotal(t *testing.T) {
	s, now := newTestStore(t, domain.AppData{})

	ticket, snap := s.AddPurchaseTicket(
		TicketInput{Subject: "Router", Location: "Office", Status: domain.StatusWaitingPurchase},
		PurchaseInput{CompanyName: "ACME", Quantity: 2, Price: 500, IsVatInclusive: false},
	)
	require.NotNil(t, ticket.Purchase)
	assert.Equal(t, 1070.0, ticket.Purchase.TotalPrice)
	assert.Equal(t, domain.TicketPurchase, ticket.Type())
	assert.Equal(t, *now, ticket.CreatedAt)
	assert.Equal(t, *now, ticket.UpdatedAt)
	assert.Equal(t, ticket, snap.Tickets[0])
}

func TestUpdateTicketKeepsCreatedAtAndRecomputesTotal(t *testing.T) {
	s, now := newTestStore(t, domain.AppData{})
	ticket, _ := s.AddPurchaseTicket(TicketInput{Subject: "Cable"}, PurchaseInput{Quantity: 3, Price: 100, IsVatInclusive: true})
	assert.Equal(t, 300.0, ticket.Purchase.TotalPrice)

	*now = now.Add(time.Hour)
	edited := ticket
	edited.CreatedAt = time.Time{}
	edited.Purchase = &domain.PurchaseDetails{Quantity: 3, Price: 100, IsVatInclusive: false, TotalPrice: 1}
	snap := s.UpdateTicket(edited)

	got := snap.Tickets[0]
	assert.Equal(t, ticket.CreatedAt, got.CreatedAt)
	assert.Equal(t, *now, got.UpdatedAt)
	assert.Equal(t, 321.0, got.Purchase.TotalPrice)
	assert.Equal(t, 1.0, edited.Purchase.TotalPrice, "caller's value must not be modified")
}

func TestSetTicketStatusRefreshesUpdatedAt(t *testing.T) {
	s, now := newTestStore(t, domain.AppData{})
	ticket, _ := s.AddRepairTicket(TicketInput{Subject: "Printer"})
	assert.Nil(t, ticket.Purchase)

	*now = now.Add(2 * time.Hour)
	snap := s.SetTicketStatus(ticket.ID, domain.StatusCompleted)
	assert.Equal(t, domain.StatusCompleted, snap.Tickets[0].Status)
	assert.Equal(t, *now, snap.Tickets[0].UpdatedAt)
	assert.Equal(t, ticket.CreatedAt, snap.Tickets[0].CreatedAt)
}

func TestDeleteNonexistentAssetIsNoop(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{
		Assets: []domain.Asset{{ID: "as-1", Name: "Router"}},
	})
	before := s.Snapshot()

	notified := 0
	s.Subscribe(func(Change) { notified++ })

	snap := s.DeleteAsset("does-not-exist")
	assert.Equal(t, before.Assets, snap.Assets)
	assert.Equal(t, 0, notified)
}

func TestMutationsLeaveEarlierSnapshotsUntouched(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{
		Assets: []domain.Asset{{ID: "as-1", Name: "Router", Status: domain.AssetActive}},
	})
	before := s.Snapshot()

	s.SetAssetStatus("as-1", domain.AssetLost)
	s.AddAsset(AssetInput{Name: "Camera"})
	s.DeleteAsset("as-1")

	require.Len(t, before.Assets, 1)
	assert.Equal(t, domain.AssetActive, before.Assets[0].Status)
	assert.Len(t, s.Snapshot().Assets, 1)
	assert.Equal(t, "Camera", s.Snapshot().Assets[0].Name)
}

func TestAddAssetDefaults(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})
	asset, _ := s.AddAsset(AssetInput{Name: "CCTV", Category: "CCTV"})
	assert.Equal(t, domain.AssetActive, asset.Status)
	assert.Equal(t, "Tester", asset.StaffName)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).Local().Format(domain.DateLayout), asset.LastChecked)

	snap := s.SetAssetImage(asset.ID, "data:image/jpeg;base64,AAAA")
	assert.Equal(t, "data:image/jpeg;base64,AAAA", snap.Assets[0].ImageURL)
}

func TestInspectionSlots(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})
	ins, _ := s.AddInspection("Ferry 105", []domain.InspectionImage{
		{Label: "Bridge"},
		{ID: "keep", Label: "Engine room"},
	})
	assert.Equal(t, "Tester", ins.Inspector)
	require.Len(t, ins.Images, 2)
	assert.NotEmpty(t, ins.Images[0].ID)
	assert.Equal(t, "keep", ins.Images[1].ID)

	before := s.Snapshot()
	snap := s.SetInspectionSlotStatus(ins.ID, "keep", domain.InspectionBroken)
	assert.Equal(t, domain.InspectionBroken, snap.ShipInspections[0].Images[1].Status)
	assert.Empty(t, before.ShipInspections[0].Images[1].Status)

	snap = s.SetInspectionSlotPhoto(ins.ID, "keep", "data:image/jpeg;base64,AAAA")
	require.NotNil(t, snap.ShipInspections[0].Images[1].URL)
	assert.Nil(t, before.ShipInspections[0].Images[1].URL)

	unchanged := s.SetInspectionSlotStatus(ins.ID, "missing", domain.InspectionLost)
	assert.Equal(t, snap, unchanged)

	snap = s.DeleteInspection(ins.ID)
	assert.Empty(t, snap.ShipInspections)
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})
	notified := 0
	s.Subscribe(func(Change) { notified++ })

	s.UpdateWorkLog(domain.WorkLog{ID: "nope"})
	s.UpdateTicket(domain.Ticket{ID: "nope"})
	s.UpdateAsset(domain.Asset{ID: "nope"})
	s.UpdateInspection(domain.ShipInspection{ID: "nope"})
	s.EditWorkLog("nope", func(l domain.WorkLog) domain.WorkLog { return l })
	s.EditTicket("nope", func(t domain.Ticket) domain.Ticket { return t })
	s.SetWorkLogStatus("nope", domain.StatusCompleted)
	s.AddTicketImages("nope", "x")

	assert.Equal(t, 0, notified)
}

func TestEditMergesWithLatestRecord(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})
	log, _ := s.AddWorkLog(WorkLogInput{Date: "2025-06-01", Location: "Pier", TaskDescription: "Check POS"})
	s.SetWorkLogStatus(log.ID, domain.StatusCompleted)

	snap := s.EditWorkLog(log.ID, func(old domain.WorkLog) domain.WorkLog {
		old.Location = "Office"
		old.ID = "renamed"
		return old
	})
	require.Len(t, snap.WorkLogs, 1)
	assert.Equal(t, log.ID, snap.WorkLogs[0].ID)
	assert.Equal(t, "Office", snap.WorkLogs[0].Location)
	assert.Equal(t, domain.StatusCompleted, snap.WorkLogs[0].Status)

	asset, _ := s.AddAsset(AssetInput{Name: "Router"})
	s.SetAssetStatus(asset.ID, domain.AssetMaintenance)
	snap = s.EditAsset(asset.ID, func(old domain.Asset) domain.Asset {
		old.LocationName = "Ship 106"
		return old
	})
	assert.Equal(t, domain.AssetMaintenance, snap.Assets[0].Status)
	assert.Equal(t, "Ship 106", snap.Assets[0].LocationName)
}

func TestEditTicketKeepsBookkeeping(t *testing.T) {
	s, now := newTestStore(t, domain.AppData{})
	ticket, _ := s.AddPurchaseTicket(TicketInput{Subject: "Toner"}, PurchaseInput{Quantity: 2, Price: 500})
	*now = now.Add(time.Hour)

	snap := s.EditTicket(ticket.ID, func(old domain.Ticket) domain.Ticket {
		old.CreatedAt = time.Time{}
		old.Purchase = &domain.PurchaseDetails{Quantity: 3, Price: 100}
		return old
	})
	got := snap.Tickets[0]
	assert.Equal(t, ticket.CreatedAt, got.CreatedAt)
	assert.Equal(t, ticket.CreatedAt.Add(time.Hour), got.UpdatedAt)
	assert.InDelta(t, 321, got.Purchase.TotalPrice, 0.001)
}

func TestEditInspectionAssignsSlotIDs(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})
	ins, _ := s.AddInspection("Ship 105", nil)

	snap := s.EditInspection(ins.ID, func(old domain.ShipInspection) domain.ShipInspection {
		old.Images = append(old.Images, domain.InspectionImage{Label: "POS"})
		return old
	})
	require.Len(t, snap.ShipInspections[0].Images, 1)
	assert.NotEmpty(t, snap.ShipInspections[0].Images[0].ID)
}

func TestSubscribersSeeChangesInCommitOrder(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})

	var mu sync.Mutex
	var seen []int
	unsubscribe := s.Subscribe(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, len(c.Snapshot.WorkLogs))
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddWorkLog(WorkLogInput{Date: "2025-06-01"})
		}()
	}
	wg.Wait()

	require.Len(t, seen, 20)
	for i, n := range seen {
		assert.Equal(t, i+1, n)
	}

	unsubscribe()
	s.AddWorkLog(WorkLogInput{Date: "2025-06-01"})
	assert.Len(t, seen, 20)
}

func TestReplaceNotifiesWithWholeDataset(t *testing.T) {
	s, _ := newTestStore(t, domain.AppData{})
	var got Change
	s.Subscribe(func(c Change) { got = c })

	s.Replace(domain.AppData{Assets: []domain.Asset{{ID: "a"}}})
	assert.Equal(t, ChangeReplace, got.Kind)
	assert.Equal(t, CollectionAll, got.Collection)
	assert.NotNil(t, got.Snapshot.WorkLogs)
	assert.Len(t, got.Snapshot.Assets, 1)
}
