package client

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/tidwall/gjson"
)

// userRef is a user reference that the server sends either as a bare id or
// as an embedded user object.
type userRef string

func (r *userRef) UnmarshalJSON(b []byte) error {
	v := gjson.ParseBytes(b)
	switch {
	case v.Type == gjson.String:
		*r = userRef(v.String())
	case v.IsObject():
		*r = userRef(v.Get("_id").String())
	default:
		*r = ""
	}
	return nil
}

// timestamp is an RFC 3339 time that may be absent, null or empty.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(b []byte) error {
	v := gjson.ParseBytes(b)
	if v.Type == gjson.Null || (v.Type == gjson.String && v.Str == "") {
		*t = timestamp{}
		return nil
	}
	if v.Type != gjson.String {
		return fmt.Errorf("createdAt: want string, got %s", v.Type)
	}
	parsed, err := time.Parse(time.RFC3339Nano, v.Str)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	*t = timestamp(parsed)
	return nil
}

type userDTO struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
}

func (u userDTO) toModel() models.UserProfile {
	return models.UserProfile{ID: u.ID, Name: u.Name, About: u.About, AvatarURL: u.Avatar}
}

type cardDTO struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     userRef   `json:"owner"`
	Likes     []userRef `json:"likes"`
	CreatedAt timestamp `json:"createdAt"`
}

func (c cardDTO) toModel() models.Card {
	ids := make([]string, 0, len(c.Likes))
	for _, l := range c.Likes {
		ids = append(ids, string(l))
	}

	return models.Card{
		ID:        c.ID,
		Name:      c.Name,
		ImageURL:  c.Link,
		OwnerID:   string(c.Owner),
		LikedBy:   models.NewUserSet(ids...),
		CreatedAt: time.Time(c.CreatedAt),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type cardRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}
