package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxFavoriteCategories bounds the favorite category list
const MaxFavoriteCategories = 5

// User is a registered member. FavoriteCategories is maintained by the
// preference refresh and is never edited through the API.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username           string             `bson:"username" json:"username"`
	Email              string             `bson:"email" json:"email"`
	DisplayName        string             `bson:"displayName" json:"displayName"`
	Bio                string             `bson:"bio" json:"bio"`
	FavoriteCategories []string           `bson:"favoriteCategories" json:"favoriteCategories"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfileResponse omits private fields such as email
type PublicProfileResponse struct {
	ID                 primitive.ObjectID `json:"id"`
	Username           string             `json:"username"`
	DisplayName        string             `json:"displayName"`
	Bio                string             `json:"bio"`
	FavoriteCategories []string           `json:"favoriteCategories"`
	JoinedAt           time.Time          `json:"joinedAt"`
}

// ToPublicProfile returns the fields safe for public display
func (u *User) ToPublicProfile() PublicProfileResponse {
	return PublicProfileResponse{
		ID:                 u.ID,
		Username:           u.Username,
		DisplayName:        u.DisplayName,
		Bio:                u.Bio,
		FavoriteCategories: u.FavoriteCategories,
		JoinedAt:           u.CreatedAt,
	}
}
