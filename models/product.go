package models

import (
	"strings"
	"time"
)

type Review struct {
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	UserID     string    `json:"userId" bson:"userId"`
	UserName   string    `json:"userName" bson:"userName"`
	UserAvatar string    `json:"userAvatar,omitempty" bson:"userAvatar,omitempty"`
	Date       time.Time `json:"date" bson:"date"`
}

type Product struct {
	ID           string    `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID    string    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	Price        float64   `json:"price" bson:"price"`
	MarketPrice  float64   `json:"marketPrice,omitempty" bson:"marketPrice,omitempty"`
	Category     string    `json:"category" bson:"category"`
	Image        string    `json:"image" bson:"image"`
	Images       []string  `json:"images,omitempty" bson:"images,omitempty"`
	Sizes        []string  `json:"sizes" bson:"sizes"`
	Colors       []string  `json:"colors" bson:"colors"`
	InStock      bool      `json:"inStock" bson:"inStock"`
	Description  string    `json:"description" bson:"description"`
	IsNewArrival bool      `json:"isNewArrival" bson:"isNewArrival"`
	Reviews      []Review  `json:"reviews,omitempty" bson:"reviews,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Validate checks the document-level constraints every write must satisfy.
func (p *Product) Validate() *AppError {
	var fields []FieldError
	if strings.TrimSpace(p.ProductID) == "" {
		fields = append(fields, FieldError{Field: "id", Message: "id is required"})
	}
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if p.Price < 0 {
		fields = append(fields, FieldError{Field: "price", Message: "price must not be negative"})
	}
	if p.MarketPrice > 0 && p.MarketPrice < p.Price {
		fields = append(fields, FieldError{Field: "marketPrice", Message: "marketPrice must be greater than or equal to price"})
	}
	if len(p.Colors) == 0 {
		fields = append(fields, FieldError{Field: "colors", Message: "at least one color is required"})
	}
	for _, c := range p.Colors {
		if strings.TrimSpace(c) == "" {
			fields = append(fields, FieldError{Field: "colors", Message: "colors must not contain blank entries"})
			break
		}
	}
	if len(fields) > 0 {
		return ErrValidation("Invalid product", fields...)
	}
	return nil
}

// ProductSummary is the reduced projection used by the new-arrivals listing.
type ProductSummary struct {
	ProductID   string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	MarketPrice float64   `json:"marketPrice,omitempty"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Price:       p.Price,
		MarketPrice: p.MarketPrice,
		Image:       p.Image,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

type CategoryGallery struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}
