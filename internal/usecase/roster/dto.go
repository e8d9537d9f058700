package roster

import "time"

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

type RosterRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1,max=1000000"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type InvitationSummary struct {
	ID         string     `json:"id"`
	Code       string     `json:"invitation_code"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
}

type EntryResponse struct {
	DriverID    string             `json:"driver_id,omitempty"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	VehicleType string             `json:"vehicle_type"`
	Birthday    *time.Time         `json:"birthday"`
	PictureURL  string             `json:"picture_url"`
	Status      string             `json:"status"`
	Placeholder bool               `json:"placeholder"`
	Invitation  *InvitationSummary `json:"invitation"`
}

type RosterResponse struct {
	Entries        []EntryResponse `json:"entries"`
	Total          int             `json:"total"`
	Page           int             `json:"page"`
	PageSize       int             `json:"page_size"`
	TotalPages     int             `json:"total_pages"`
	PendingCount   int             `json:"pending_count"`
	AcceptedCount  int             `json:"accepted_count"`
	UninvitedCount int             `json:"uninvited_count"`
	Degraded       bool            `json:"degraded"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	resp := EntryResponse{
		DriverID:    e.DriverID,
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		VehicleType: e.VehicleType,
		Birthday:    e.Birthday,
		PictureURL:  e.PictureURL,
		Status:      e.StatusLabel(),
		Placeholder: e.Placeholder,
	}
	if inv := e.Invitation; inv != nil {
		resp.Invitation = &InvitationSummary{
			ID:         inv.ID,
			Code:       inv.Code,
			Status:     string(inv.Status),
			CreatedAt:  inv.CreatedAt,
			AcceptedAt: inv.AcceptedAt,
		}
	}
	return resp
}

// ToRosterResponse pages r. Out-of-range pages yield no entries.
func ToRosterResponse(r *Roster, page, pageSize int) *RosterResponse {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	totalPages := r.Total / pageSize
	if r.Total%pageSize > 0 {
		totalPages++
	}

	start := len(r.Entries)
	if page-1 <= len(r.Entries)/pageSize {
		start = (page - 1) * pageSize
	}
	if start > len(r.Entries) {
		start = len(r.Entries)
	}
	end := start + pageSize
	if end > len(r.Entries) {
		end = len(r.Entries)
	}

	entries := make([]EntryResponse, 0, end-start)
	for i := start; i < end; i++ {
		entries = append(entries, ToEntryResponse(&r.Entries[i]))
	}

	return &RosterResponse{
		Entries:        entries,
		Total:          r.Total,
		Page:           page,
		PageSize:       pageSize,
		TotalPages:     totalPages,
		PendingCount:   r.PendingCount,
		AcceptedCount:  r.AcceptedCount,
		UninvitedCount: r.UninvitedCount,
		Degraded:       r.Degraded,
	}
}
