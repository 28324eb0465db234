// Package aigen defines the product-detail generation service the API
// calls when a vendor uploads a product image. The real provider lives
// behind the DetailGenerator interface; the shipped implementation is a
// mock that mimics the provider's response shape.
package aigen

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// ProductDetails is what the generator returns for an uploaded image
type ProductDetails struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	SuggestedCategory string   `json:"suggestedCategory"`
}

// DetailGenerator produces product details from raw image bytes
type DetailGenerator interface {
	GenerateFromImage(ctx context.Context, imageData []byte, mimeType string) (*ProductDetails, error)
}

// MockGenerator is a stand-in for a real AI provider. It ignores the
// image content and returns canned details after a short simulated
// processing delay.
type MockGenerator struct {
	// Delay simulates provider latency. Zero means no delay.
	Delay time.Duration

	// Categories to draw the suggestion from
	Categories []string
}

// NewMockGenerator returns a mock generator suggesting from the given
// category list.
func NewMockGenerator(categories []string) *MockGenerator {
	return &MockGenerator{
		Delay:      1500 * time.Millisecond,
		Categories: categories,
	}
}

// GenerateFromImage returns mock product details
func (g *MockGenerator) GenerateFromImage(ctx context.Context, imageData []byte, mimeType string) (*ProductDetails, error) {
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	category := "Other"
	if len(g.Categories) > 0 {
		category = g.Categories[rand.Intn(len(g.Categories))]
	}

	return &ProductDetails{
		Title:             fmt.Sprintf("Mock AI Title - %s", time.Now().Format("15:04:05")),
		Description:       "This is a mock AI-generated description. It emphasizes key features and benefits of the product shown in the image. It's designed to be engaging and informative for potential customers.",
		Tags:              []string{"mock tag", "ai generated", "product feature"},
		SuggestedCategory: category,
	}, nil
}
