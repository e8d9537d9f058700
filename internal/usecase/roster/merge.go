// Package roster reconciles drivers with invitations into the admin roster.
package roster

import (
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"
)

const statusNone = "N/A"

// Entry is one roster row. Placeholder entries stand in for invited
// recipients who have not signed up yet and carry no driver fields.
type Entry struct {
	DriverID    string
	CompanyID   string
	Name        string
	Email       string
	Phone       string
	VehicleType string
	Birthday    *time.Time
	PictureURL  string
	Invitation  *domainInvitation.Invitation
	Placeholder bool
}

// StatusLabel is the invitation status shown for the row.
func (e *Entry) StatusLabel() string {
	if e.Invitation == nil {
		return statusNone
	}
	return string(e.Invitation.Status)
}

func (e *Entry) isPending() bool {
	return e.Invitation != nil && e.Invitation.Status == domainInvitation.StatusPending
}

// Merge joins drivers and invitations on exact email. Every driver and every
// invitation appears in exactly one entry. Inputs are not modified.
//
// A driver takes the first accepted invitation for its email, or the first
// invitation if none is accepted. Entries follow invitation fetch order, then
// uninvited drivers in driver fetch order, and pending entries are moved to
// the front without reordering either group.
func Merge(drivers []*domainDriver.Driver, invitations []*domainInvitation.Invitation) []Entry {
	driverByEmail := make(map[string]int, len(drivers))
	for i, d := range drivers {
		if _, seen := driverByEmail[d.Email]; !seen {
			driverByEmail[d.Email] = i
		}
	}

	// email -> index into invitations of the one paired with a driver
	paired := make(map[string]int)
	for i, inv := range invitations {
		if _, ok := driverByEmail[inv.RecipientEmail]; !ok {
			continue
		}
		cur, ok := paired[inv.RecipientEmail]
		if !ok {
			paired[inv.RecipientEmail] = i
			continue
		}
		if invitations[cur].Status != domainInvitation.StatusAccepted && inv.Status == domainInvitation.StatusAccepted {
			paired[inv.RecipientEmail] = i
		}
	}

	entries := make([]Entry, 0, len(drivers)+len(invitations))
	invited := make([]bool, len(drivers))
	for i, inv := range invitations {
		if idx, ok := paired[inv.RecipientEmail]; ok && idx == i {
			di := driverByEmail[inv.RecipientEmail]
			invited[di] = true
			entries = append(entries, driverEntry(drivers[di], inv))
			continue
		}
		entries = append(entries, placeholderEntry(inv))
	}
	for i, d := range drivers {
		if !invited[i] {
			entries = append(entries, driverEntry(d, nil))
		}
	}

	return partitionPending(entries)
}

func partitionPending(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.isPending() {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if !e.isPending() {
			out = append(out, e)
		}
	}
	return out
}

func driverEntry(d *domainDriver.Driver, inv *domainInvitation.Invitation) Entry {
	return Entry{
		DriverID:    d.ID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		VehicleType: d.VehicleType,
		Birthday:    d.Birthday,
		PictureURL:  d.PictureURL,
		Invitation:  inv,
	}
}

func placeholderEntry(inv *domainInvitation.Invitation) Entry {
	return Entry{
		CompanyID:   inv.CompanyID,
		Name:        inv.RecipientName,
		Email:       inv.RecipientEmail,
		Invitation:  inv,
		Placeholder: true,
	}
}
