package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"

	"zapcontacts/models"
)

func TestUpgradeAmount(t *testing.T) {
	plan := models.Plan{Name: "premium", Price: 1900, StripePriceID: "price_123"}

	// The configured Stripe price takes precedence
	assert.Equal(t, int64(2900), upgradeAmount(plan, &stripe.Price{UnitAmount: 2900}))

	// Without a resolved price, fall back to the seeded amount
	assert.Equal(t, int64(1900), upgradeAmount(plan, nil))
	assert.Equal(t, int64(1900), upgradeAmount(plan, &stripe.Price{UnitAmount: 0}))
}
