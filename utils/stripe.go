package utils

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/webhook"

	"zapcontacts/config"
)

// ConstructStripeEvent securely constructs and verifies a Stripe webhook event
func ConstructStripeEvent(c *fiber.Ctx) (stripe.Event, error) {
	payload := c.Body()

	// Get and validate the Stripe-Signature header
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return stripe.Event{}, fiber.NewError(fiber.StatusBadRequest, "Missing Stripe-Signature header")
	}

	// Verify the webhook signature with tolerance for clock drift
	event, err := webhook.ConstructEventWithTolerance(
		payload,
		signature,
		config.AppConfig.StripeWebhookSecret,
		5*time.Minute,
	)
	if err != nil {
		LogEvent("stripe_webhook_invalid_signature", map[string]interface{}{
			"error": err.Error(),
		})
		return stripe.Event{}, fiber.NewError(fiber.StatusBadRequest, "Invalid webhook signature")
	}

	return event, nil
}

// GetStripePrice retrieves a price from Stripe with proper error handling
func GetStripePrice(priceID string) (*stripe.Price, error) {
	if priceID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Price ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := price.Get(priceID, &stripe.PriceParams{
		Params: stripe.Params{
			Context: ctx,
		},
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to retrieve price information")
	}

	return p, nil
}
