package models

// Building groups rooms.
type Building struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Room is a classroom a checker can be assigned to.
type Room struct {
	ID         int64       `json:"id"`
	RoomNumber string      `json:"room_number"`
	BuildingID int64       `json:"building_id"`
	CheckerID  *int64      `json:"checker_id,omitempty"`
	Building   *Building   `json:"building,omitempty"`
	Checker    *CheckerRef `json:"checker,omitempty"`
}
