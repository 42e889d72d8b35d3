package model

// View names the storefront screens a guest can be on.
const (
	ViewRooms  = "rooms"
	ViewDetail = "detail"
	ViewWizard = "wizard"
)

// AppState is an immutable description of where a guest is in the storefront.
// Transition methods return a new value; an invalid transition returns the
// receiver unchanged, so callers can chain without error handling.
type AppState struct {
	View   string `json:"view"`
	RoomID string `json:"room_id,omitempty"`
}

// NewAppState starts on the rooms listing with no selection.
func NewAppState() AppState {
	return AppState{View: ViewRooms}
}

// SelectRoom moves to the detail view for the given room.
func (a AppState) SelectRoom(roomID string) AppState {
	if roomID == "" {
		return a
	}

	return AppState{View: ViewDetail, RoomID: roomID}
}

// BeginBooking enters the wizard. Requires a selected room.
func (a AppState) BeginBooking() AppState {
	if a.RoomID == "" {
		return a
	}

	return AppState{View: ViewWizard, RoomID: a.RoomID}
}

// BackToRooms returns to the listing and clears the selection.
func (a AppState) BackToRooms() AppState {
	return AppState{View: ViewRooms}
}
