// cmd/mailcheck/main.go
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
	"github.com/your-org/storefront/internal/pkg/email"
	"github.com/your-org/storefront/internal/pkg/logger"
)

// Sends a sample order confirmation through the configured email provider.
//
//	go run ./cmd/mailcheck -to someone@example.com
func main() {
	to := flag.String("to", "", "recipient address")
	government := flag.Bool("government", false, "price the sample order for a government account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg)

	if *to == "" {
		log.Fatal("Usage: mailcheck -to <address>")
	}

	accountType := pricing.AccountIndividual
	if *government {
		accountType = pricing.AccountGovernment
	}

	// A throwaway store produces a real order from the built-in catalog
	s := store.New(store.Options{SessionID: "mailcheck", Catalog: catalog.Default(), Logger: log})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.SetAccountType(ctx, accountType); err != nil {
		log.WithError(err).Fatal("Failed to set account type")
	}
	for _, p := range catalog.Default().Featured()[:2] {
		if err := s.AddToCart(ctx, p, 1); err != nil {
			log.WithError(err).Fatal("Failed to build sample cart")
		}
	}

	order, err := s.PlaceOrder(ctx, store.CheckoutForm{
		Name:       "Mail Check",
		Email:      *to,
		Address:    "1 Test Street",
		City:       "Springfield",
		ZipCode:    "12345",
		CardNumber: "4111111111111111",
		ExpiryDate: "12/30",
		CVV:        "123",
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to place sample order")
	}

	svc := email.NewEmailService(cfg, log)
	if err := svc.SendOrderConfirmationEmail(ctx, order); err != nil {
		log.WithError(err).Fatal("Send failed")
	}

	log.WithFields(logrus.Fields{
		"to":       *to,
		"order_id": order.ID,
		"provider": cfg.Email.Provider,
	}).Info("Email sent successfully")
}
