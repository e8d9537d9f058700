package roster

import (
	"fmt"
	"math/rand"
	"testing"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_DriverWithAcceptedInviteAndPendingPlaceholder(t *testing.T) {
	drivers := []*domainDriver.Driver{{ID: "1", Email: "a@x.com", Name: "A"}}
	invitations := []*domainInvitation.Invitation{
		{ID: "ia", RecipientEmail: "a@x.com", Status: domainInvitation.StatusAccepted},
		{ID: "ib", RecipientEmail: "b@x.com", RecipientName: "B", Status: domainInvitation.StatusPending},
	}

	entries := Merge(drivers, invitations)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Placeholder)
	assert.Equal(t, "B", entries[0].Name)
	assert.Equal(t, "b@x.com", entries[0].Email)
	assert.Empty(t, entries[0].DriverID)
	assert.Equal(t, "pending", entries[0].StatusLabel())

	assert.False(t, entries[1].Placeholder)
	assert.Equal(t, "1", entries[1].DriverID)
	assert.Equal(t, "A", entries[1].Name)
	require.NotNil(t, entries[1].Invitation)
	assert.Equal(t, "ia", entries[1].Invitation.ID)
	assert.Equal(t, "accepted", entries[1].StatusLabel())
}

func TestMerge_UninvitedDriverShowsNA(t *testing.T) {
	entries := Merge([]*domainDriver.Driver{{ID: "1", Email: "a@x.com"}}, nil)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Invitation)
	assert.Equal(t, "N/A", entries[0].StatusLabel())
}

func TestMerge_EmailMatchIsCaseSensitive(t *testing.T) {
	drivers := []*domainDriver.Driver{{ID: "1", Email: "a@x.com"}}
	invitations := []*domainInvitation.Invitation{{ID: "i1", RecipientEmail: "A@x.com", Status: domainInvitation.StatusAccepted}}

	entries := Merge(drivers, invitations)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Placeholder)
	assert.Equal(t, "A@x.com", entries[0].Email)
	assert.Nil(t, entries[1].Invitation)
}

func TestMerge_DuplicateInvitationsPreferAccepted(t *testing.T) {
	drivers := []*domainDriver.Driver{{ID: "1", Email: "a@x.com"}}
	invitations := []*domainInvitation.Invitation{
		{ID: "p", RecipientEmail: "a@x.com", Status: domainInvitation.StatusPending},
		{ID: "acc", RecipientEmail: "a@x.com", Status: domainInvitation.StatusAccepted},
	}

	entries := Merge(drivers, invitations)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Placeholder)
	assert.Equal(t, "p", entries[0].Invitation.ID)
	assert.Equal(t, "1", entries[1].DriverID)
	assert.Equal(t, "acc", entries[1].Invitation.ID)
}

func TestMerge_PendingPartitionIsStable(t *testing.T) {
	drivers := []*domainDriver.Driver{
		{ID: "d1", Email: "d1@x.com"},
		{ID: "d2", Email: "d2@x.com"},
	}
	invitations := []*domainInvitation.Invitation{
		{ID: "a1", RecipientEmail: "d1@x.com", Status: domainInvitation.StatusAccepted},
		{ID: "p1", RecipientEmail: "p1@x.com", Status: domainInvitation.StatusPending},
		{ID: "a2", RecipientEmail: "gone@x.com", Status: domainInvitation.StatusAccepted},
		{ID: "p2", RecipientEmail: "p2@x.com", Status: domainInvitation.StatusPending},
	}

	var got []string
	for _, e := range Merge(drivers, invitations) {
		if e.Invitation != nil {
			got = append(got, e.Invitation.ID)
		} else {
			got = append(got, e.DriverID)
		}
	}
	assert.Equal(t, []string{"p1", "p2", "a1", "a2", "d2"}, got)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	drivers := []*domainDriver.Driver{{ID: "1", Email: "a@x.com", Name: "A"}}
	invitations := []*domainInvitation.Invitation{{ID: "i", RecipientEmail: "a@x.com", Status: domainInvitation.StatusPending}}

	_ = Merge(drivers, invitations)
	assert.Equal(t, &domainDriver.Driver{ID: "1", Email: "a@x.com", Name: "A"}, drivers[0])
	assert.Equal(t, domainInvitation.StatusPending, invitations[0].Status)
}

// Randomized check of completeness and ordering over many generated inputs.
func TestMerge_CompletenessAndOrderingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []domainInvitation.Status{domainInvitation.StatusPending, domainInvitation.StatusAccepted}

	for run := 0; run < 200; run++ {
		nDrivers, nInvitations := rng.Intn(8), rng.Intn(10)

		var drivers []*domainDriver.Driver
		for i := 0; i < nDrivers; i++ {
			drivers = append(drivers, &domainDriver.Driver{
				ID:    fmt.Sprintf("d%d", i),
				Email: fmt.Sprintf("u%d@x.com", i),
			})
		}
		var invitations []*domainInvitation.Invitation
		for i := 0; i < nInvitations; i++ {
			invitations = append(invitations, &domainInvitation.Invitation{
				ID:             fmt.Sprintf("i%d", i),
				RecipientEmail: fmt.Sprintf("u%d@x.com", rng.Intn(12)),
				Status:         statuses[rng.Intn(2)],
			})
		}

		entries := Merge(drivers, invitations)

		seenDrivers := map[string]int{}
		seenInvites := map[string]int{}
		for _, e := range entries {
			if !e.Placeholder {
				seenDrivers[e.DriverID]++
			}
			if e.Invitation != nil {
				seenInvites[e.Invitation.ID]++
			}
		}
		for _, d := range drivers {
			require.Equal(t, 1, seenDrivers[d.ID], "run %d driver %s", run, d.ID)
		}
		for _, inv := range invitations {
			require.Equal(t, 1, seenInvites[inv.ID], "run %d invitation %s", run, inv.ID)
		}

		matched := 0
		for _, e := range entries {
			if !e.Placeholder && e.Invitation != nil {
				matched++
			}
		}
		require.Len(t, entries, len(drivers)+len(invitations)-matched)

		pendingDone := false
		for _, e := range entries {
			if !e.isPending() {
				pendingDone = true
			} else {
				require.False(t, pendingDone, "run %d: pending entry after non-pending", run)
			}
		}
	}
}
