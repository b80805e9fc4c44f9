package domain

// Room represents a bookable hotel room. It is owned by the room directory;
// the reservation engine only reads the identity and rate, and maintains the
// Available flag as a cache derived from the confirmed booking set.
type Room struct {
	ID            string  `json:"id"`
	RoomNumber    string  `json:"room_number"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"price_per_night"`
	Available     bool    `json:"available"`
}
