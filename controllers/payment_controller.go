package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"zapcontacts/config"
	"zapcontacts/models"
	"zapcontacts/utils"
)

func InitStripe() {
	stripe.Key = config.AppConfig.StripeSecretKey
}

// CreateUpgradeIntent creates a Stripe Payment Intent for the premium plan.
// This is what the paywall's upgrade button calls.
func CreateUpgradeIntent(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if user.PlanName == "premium" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Already on the premium plan",
		})
	}

	var plan models.Plan
	if err := config.DB.Where("name = ?", "premium").First(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Premium plan not configured",
		})
	}

	customerID, err := getOrCreateStripeCustomer(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process payment",
		})
	}

	// The Stripe dashboard price wins over the locally seeded amount, so
	// price changes take effect without a deploy
	var stripePrice *stripe.Price
	if plan.StripePriceID != "" {
		stripePrice, _ = utils.GetStripePrice(plan.StripePriceID)
	}
	amount := upgradeAmount(plan, stripePrice)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyBRL)),
		Customer: stripe.String(customerID),
		Metadata: map[string]string{
			"user_id": strconv.Itoa(int(user.ID)),
			"plan_id": strconv.Itoa(int(plan.ID)),
		},
		Description: stripe.String("Upgrade to " + plan.Name + " plan"),
	}
	if plan.BillingInterval != "one_time" {
		params.SetupFutureUsage = stripe.String("off_session")
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		utils.LogEvent("stripe_intent_failed", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process payment",
		})
	}

	transaction := models.CreditTransaction{
		UserID:                user.ID,
		PlanID:                &plan.ID,
		Amount:                int(amount),
		Currency:              "brl",
		PaymentStatus:         "requires_payment_method",
		StripePaymentIntentID: pi.ID,
		Description:           "Upgrade to " + plan.Name + " plan",
	}
	if err := config.DB.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process transaction",
		})
	}

	return c.JSON(fiber.Map{
		"clientSecret":   pi.ClientSecret,
		"transaction_id": transaction.ID,
		"amount":         amount,
		"currency":       "brl",
	})
}

// upgradeAmount resolves what to charge for a plan: the Stripe price's
// unit amount when one is configured, the seeded plan price otherwise.
func upgradeAmount(plan models.Plan, price *stripe.Price) int64 {
	if price != nil && price.UnitAmount > 0 {
		return price.UnitAmount
	}
	return int64(plan.Price)
}

// HandlePaymentWebhook processes Stripe events. A succeeded payment intent
// flips the user onto the premium plan.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	event, err := utils.ConstructStripeEvent(c)
	if err != nil {
		return err
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intentID, _ := event.Data.Object["id"].(string)
		if intentID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing payment intent ID",
			})
		}

		var transaction models.CreditTransaction
		if err := config.DB.Where("stripe_payment_intent_id = ?", intentID).First(&transaction).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}

		transaction.PaymentStatus = "completed"
		if err := config.DB.Save(&transaction).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update transaction",
			})
		}

		if err := config.DB.Model(&models.User{}).
			Where("id = ?", transaction.UserID).
			Updates(map[string]interface{}{
				"plan_name": "premium",
				"plan_id":   transaction.PlanID,
			}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to upgrade plan",
			})
		}

		utils.LogEvent("plan_upgraded", map[string]interface{}{
			"user_id":        transaction.UserID,
			"transaction_id": transaction.ID,
		})

	case "payment_intent.payment_failed":
		intentID, _ := event.Data.Object["id"].(string)
		if intentID != "" {
			config.DB.Model(&models.CreditTransaction{}).
				Where("stripe_payment_intent_id = ?", intentID).
				Update("payment_status", "failed")
		}
	}

	return c.JSON(fiber.Map{"received": true})
}

func getOrCreateStripeCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Metadata: map[string]string{
			"user_id": strconv.Itoa(int(user.ID)),
		},
	}
	if user.Name != nil {
		params.Name = stripe.String(*user.Name)
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	user.StripeCustomerID = &cust.ID
	if err := config.DB.Save(user).Error; err != nil {
		return "", err
	}

	return cust.ID, nil
}
