package models

import "time"

type User struct {
	ID                   string     `json:"_id" bson:"_id,omitempty"`
	UserID               string     `json:"userId" bson:"userId"`
	Name                 string     `json:"name" bson:"name"`
	Email                string     `json:"email" bson:"email"`
	Phone                string     `json:"phone" bson:"phone"`
	Password             string     `json:"-" bson:"password"`
	Avatar               string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	ResetPasswordToken   string     `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpires *time.Time `json:"-" bson:"resetPasswordExpires,omitempty"`
	Wishlist             []string   `json:"wishlist" bson:"wishlist"`
	Cart                 []CartItem `json:"cart" bson:"cart"`
	CreatedAt            time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CartItem is one cart line. (ProductID, Size, Color) identifies the line.
type CartItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	Size      string `json:"size" bson:"size"`
	Color     string `json:"color" bson:"color"`
}

type CartKey struct {
	ProductID string
	Size      string
	Color     string
}

func (i CartItem) Key() CartKey {
	return CartKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

// PublicUser is the user shape returned by listing and auth endpoints.
type PublicUser struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

type ProfileUpdate struct {
	Name   *string
	Phone  *string
	Avatar *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Avatar == nil
}
