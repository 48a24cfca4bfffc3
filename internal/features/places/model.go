package places

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Place types
const (
	TypeRestaurant = "restaurant"
	TypeCafe       = "cafe"
	TypeBar        = "bar"
	TypePopup      = "popup"
	TypeGallery    = "gallery"
	TypeMuseum     = "museum"
	TypePark       = "park"
	TypeEventSpace = "event_space"
	TypeBoutique   = "boutique"
	TypeBookstore  = "bookstore"
	TypeMarket     = "market"
	TypeTheater    = "theater"
	TypeOther      = "other"
)

// GeoPoint is an optional coordinate pair
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Place is a real-world venue that can be recommended
type Place struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	PlaceType     string             `bson:"placeType" json:"placeType"`
	Address       string             `bson:"address" json:"address"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state,omitempty" json:"state,omitempty"`
	Country       string             `bson:"country" json:"country"`
	Location      *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty"`
	Instagram     string             `bson:"instagram,omitempty" json:"instagram,omitempty"`
	AestheticTags []string           `bson:"aestheticTags" json:"aestheticTags"`
	MoodTags      []string           `bson:"moodTags" json:"moodTags"`
	Features      []string           `bson:"features" json:"features"`
	ViewsCount    int                `bson:"viewsCount" json:"viewsCount"`
	SavesCount    int                `bson:"savesCount" json:"savesCount"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Verified      bool               `bson:"verified" json:"verified"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Event is a time-limited happening, optionally hosted at a Place
type Event struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	EventType       string              `bson:"eventType" json:"eventType"`
	PlaceID         *primitive.ObjectID `bson:"placeId,omitempty" json:"placeId,omitempty"`
	LocationName    string              `bson:"locationName,omitempty" json:"locationName,omitempty"`
	Address         string              `bson:"address" json:"address"`
	City            string              `bson:"city" json:"city"`
	StartDate       time.Time           `bson:"startDate" json:"startDate"`
	EndDate         *time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	StartTime       string              `bson:"startTime,omitempty" json:"startTime,omitempty"`
	Website         string              `bson:"website,omitempty" json:"website,omitempty"`
	TicketURL       string              `bson:"ticketUrl,omitempty" json:"ticketUrl,omitempty"`
	PriceInfo       string              `bson:"priceInfo,omitempty" json:"priceInfo,omitempty"`
	AestheticTags   []string            `bson:"aestheticTags" json:"aestheticTags"`
	MoodTags        []string            `bson:"moodTags" json:"moodTags"`
	ViewsCount      int                 `bson:"viewsCount" json:"viewsCount"`
	InterestedCount int                 `bson:"interestedCount" json:"interestedCount"`
	IsActive        bool                `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SavedPlace is a user's bookmark of a place, unique per (user, place)
type SavedPlace struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PlaceID   primitive.ObjectID `bson:"placeId" json:"placeId"`
	Notes     string             `bson:"notes" json:"notes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ListQuery for GET /places
type ListQuery struct {
	City      string `form:"city"`
	PlaceType string `form:"type"`
	Tag       string `form:"tag"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// SaveRequest for POST /places/:id/save
type SaveRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// SaveResponse after saving a place
type SaveResponse struct {
	Saved bool   `json:"saved"`
	State string `json:"state" example:"place saved"`
}
