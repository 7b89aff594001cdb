package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

// PaddleConfig holds configuration for the Paddle payment processor.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY,required"`
	ClientToken string `env:"PADDLE_CLIENT_TOKEN"`
	// ProductID is the catalog product one-time charges are billed under.
	// Paddle requires every transaction line to reference a product even
	// when the price is supplied ad hoc.
	ProductID   string `env:"PADDLE_PRODUCT_ID"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// CustomerRefStore maps local user ids to processor customer ids. Paddle
// assigns its own customer ids (ctm_*), so the link is kept locally; the
// host system owns the durable mapping.
type CustomerRefStore interface {
	// GetCustomerRef returns the processor customer id for a local user,
	// or ErrCustomerRefNotFound when no customer was created yet.
	GetCustomerRef(ctx context.Context, localID string) (string, error)
	SetCustomerRef(ctx context.Context, localID, remoteID string) error
}

// ErrCustomerRefNotFound signals an absent local->processor customer link.
var ErrCustomerRefNotFound = errors.New("customer reference not found")

// PaddleProcessor implements PaymentProcessor over the Paddle SDK.
type PaddleProcessor struct {
	client *paddle.SDK
	refs   CustomerRefStore
	config PaddleConfig
}

// NewPaddleProcessor creates a Paddle-backed PaymentProcessor.
func NewPaddleProcessor(config PaddleConfig, refs CustomerRefStore) (*PaddleProcessor, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if refs == nil {
		return nil, errors.New("checkout: CustomerRefStore is required")
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProcessor{client: client, refs: refs, config: config}, nil
}

// FindCustomer resolves the stored customer link and fetches the customer
// from Paddle. A missing link is the expected not-found branch.
func (p *PaddleProcessor) FindCustomer(ctx context.Context, localID string) (CustomerLookup, error) {
	ref, err := p.refs.GetCustomerRef(ctx, localID)
	if err != nil {
		if errors.Is(err, ErrCustomerRefNotFound) {
			return CustomerLookup{}, nil
		}
		return CustomerLookup{}, err
	}

	customer, err := p.client.CustomersClient.GetCustomer(ctx, &paddle.GetCustomerRequest{
		CustomerID: ref,
	})
	if err != nil {
		return CustomerLookup{}, fmt.Errorf("failed to fetch paddle customer: %w", err)
	}

	return CustomerLookup{Found: true, Customer: Customer{
		ID:    customer.ID,
		Email: customer.Email,
	}}, nil
}

// CreateCustomer creates the Paddle customer and records the local link.
// Risk signals travel in custom data; Paddle has no dedicated fields for
// them.
func (p *PaddleProcessor) CreateCustomer(ctx context.Context, c NewCustomer) (Customer, error) {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)

	req := &paddle.CreateCustomerRequest{
		Email: c.Email,
		CustomData: paddle.CustomData{
			"local_user_id": c.LocalID,
			"client_ip":     c.ClientIP,
			"user_agent":    c.UserAgent,
		},
	}
	if name != "" {
		req.Name = paddle.PtrTo(name)
	}

	customer, err := p.client.CustomersClient.CreateCustomer(ctx, req)
	if err != nil {
		return Customer{}, fmt.Errorf("failed to create paddle customer: %w", err)
	}

	if err := p.refs.SetCustomerRef(ctx, c.LocalID, customer.ID); err != nil {
		return Customer{}, fmt.Errorf("failed to store customer reference: %w", err)
	}

	return Customer{ID: customer.ID, Email: customer.Email}, nil
}

// CreateSubscription starts a recurring subscription by creating a
// transaction for the recurring catalog price. Paddle derives the
// subscription from the transaction; the billing period end comes back on
// the created transaction. Trial terms live on the catalog price itself, so
// params.Trial is not forwarded here.
func (p *PaddleProcessor) CreateSubscription(ctx context.Context, params SubscriptionParams) (*RemoteSubscription, error) {
	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  params.PlanID,
		Quantity: 1,
	})

	req := &paddle.CreateTransactionRequest{
		Items:      []paddle.CreateTransactionItems{*item},
		CustomerID: paddle.PtrTo(params.Customer.ID),
		CustomData: paddle.CustomData{
			"idempotency_key": params.IdempotencyKey,
		},
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle subscription transaction: %w", err)
	}

	sub := &RemoteSubscription{ID: transaction.ID}
	if transaction.SubscriptionID != nil && *transaction.SubscriptionID != "" {
		sub.ID = *transaction.SubscriptionID
	}
	if transaction.BillingPeriod != nil {
		if end, err := time.Parse(time.RFC3339, transaction.BillingPeriod.EndsAt); err == nil {
			sub.PeriodEnd = end.UTC()
		}
	}

	return sub, nil
}

// Sale creates a one-time charge transaction against the customer. The
// requested amount travels as a non-catalog price under the configured
// product, and the returned Charge carries the transaction's settled totals
// rather than echoing the request.
func (p *PaddleProcessor) Sale(ctx context.Context, params SaleParams) (*Charge, error) {
	if p.config.ProductID == "" {
		return nil, errors.New("paddle product id is not configured")
	}

	description := params.Description
	if description == "" {
		description = "One-time purchase"
	}

	item := paddle.NewCreateTransactionItemsTransactionItemCreateWithPrice(
		&paddle.TransactionItemCreateWithPrice{
			Price: paddle.TransactionPriceCreateWithProductID{
				Description: description,
				ProductID:   p.config.ProductID,
				UnitPrice: paddle.Money{
					Amount:       strconv.FormatInt(params.Amount.Amount, 10),
					CurrencyCode: paddle.CurrencyCode(params.Amount.Currency),
				},
			},
			Quantity: 1,
		})

	req := &paddle.CreateTransactionRequest{
		Items:      []paddle.CreateTransactionItems{*item},
		CustomerID: paddle.PtrTo(params.Customer.ID),
		CustomData: paddle.CustomData{
			"idempotency_key": params.IdempotencyKey,
		},
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle sale: %w", err)
	}

	charge := &Charge{
		TransactionID: transaction.ID,
		Amount:        params.Amount,
	}
	if totals := transaction.Details.Totals; totals.GrandTotal != "" {
		if grand, err := strconv.ParseInt(totals.GrandTotal, 10, 64); err == nil {
			charge.Amount = payment.Money{
				Amount:   grand,
				Currency: string(totals.CurrencyCode),
			}
		}
	}
	if created, err := time.Parse(time.RFC3339, transaction.CreatedAt); err == nil {
		charge.CreatedAt = created.UTC()
	}

	return charge, nil
}

// GenerateClientToken returns the configured client-side token. Paddle uses
// a static per-seller token rather than per-request server-generated ones.
func (p *PaddleProcessor) GenerateClientToken(context.Context) (string, error) {
	if p.config.ClientToken == "" {
		return "", errors.New("paddle client token is not configured")
	}
	return p.config.ClientToken, nil
}
