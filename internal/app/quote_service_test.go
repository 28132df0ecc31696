package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/mocks"
	"github.com/polyworks/site-api/internal/ports"
)

type quoteDeps struct {
	quotes    *mocks.MockQuoteStore
	carts     *mocks.MockCartStore
	catalog   *mocks.MockProductCatalog
	forwarder *mocks.MockQuoteForwarder
	flags     *mocks.MockFeatureFlags
	metrics   *recordedMetrics
}

func newQuoteDeps(t *testing.T) *quoteDeps {
	t.Helper()

	return &quoteDeps{
		quotes:    mocks.NewMockQuoteStore(t),
		carts:     mocks.NewMockCartStore(t),
		catalog:   mocks.NewMockProductCatalog(t),
		forwarder: mocks.NewMockQuoteForwarder(t),
		flags:     mocks.NewMockFeatureFlags(t),
		metrics:   &recordedMetrics{},
	}
}

func (d *quoteDeps) service() *QuoteService {
	return NewQuoteService(QuoteServiceConfig{
		Quotes:    d.quotes,
		Carts:     d.carts,
		Catalog:   d.catalog,
		Forwarder: d.forwarder,
		Flags:     d.flags,
		Metrics:   d.metrics,
		Logger:    discardLogger(),
		Now:       clock,
		NewID:     func() string { return "q-1" },
	})
}

func filledCart() *domain.Cart {
	c := domain.NewCart("c1", fixedNow)
	c.Items = []domain.CartItem{{ProductID: "crate", Quantity: 400}}

	return c
}

var validInput = SubmitQuoteInput{
	CartID:  "c1",
	Contact: domain.Contact{Name: "Jonas Weber", Email: "jonas@example.de", Company: "Weber Logistik"},
	Message: "Grey, with logo",
	Locale:  domain.LocaleGerman,
}

func TestNewQuoteService_Panics(t *testing.T) {
	assert.Panics(t, func() { NewQuoteService(QuoteServiceConfig{}) })
}

func TestQuoteService_Submit_ForwardsAndClearsCart(t *testing.T) {
	d := newQuoteDeps(t)

	d.carts.EXPECT().Get(mock.Anything, "c1").Return(filledCart(), nil)
	d.catalog.EXPECT().Products(mock.Anything).Return(catalogProducts(), nil)
	d.quotes.EXPECT().Save(mock.Anything, mock.MatchedBy(func(q *domain.QuoteRequest) bool {
		return q.ID == "q-1"
	})).Return(nil).Twice()
	d.carts.EXPECT().Delete(mock.Anything, "c1").Return(nil)
	d.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagQuoteForwarding, true).Return(true)
	d.forwarder.EXPECT().Forward(mock.Anything, mock.Anything).Return(nil)

	q, err := d.service().Submit(context.Background(), validInput)
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusForwarded, q.Status)
	assert.Equal(t, fixedNow, q.CreatedAt)
	assert.Equal(t, domain.LocaleGerman, q.Locale)
	require.Len(t, q.Items, 1)
	assert.Equal(t, domain.QuoteLine{ProductID: "crate", SKU: "PP-CR-600", Name: "Stackable crate", Quantity: 400}, q.Items[0])
	assert.Equal(t, []string{OutcomeForwarded}, d.metrics.quotes)
}

func TestQuoteService_Submit_ForwardFailureIsRecorded(t *testing.T) {
	d := newQuoteDeps(t)

	d.carts.EXPECT().Get(mock.Anything, "c1").Return(filledCart(), nil)
	d.catalog.EXPECT().Products(mock.Anything).Return(catalogProducts(), nil)
	d.quotes.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Twice()
	d.carts.EXPECT().Delete(mock.Anything, "c1").Return(nil)
	d.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagQuoteForwarding, true).Return(true)
	d.forwarder.EXPECT().Forward(mock.Anything, mock.Anything).Return(domain.NewUnavailableError("crm", "circuit open"))

	q, err := d.service().Submit(context.Background(), validInput)
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusForwardFailed, q.Status)
	assert.Equal(t, []string{OutcomeForwardFailed}, d.metrics.quotes)
}

func TestQuoteService_Submit_ForwardingDisabled(t *testing.T) {
	d := newQuoteDeps(t)

	d.carts.EXPECT().Get(mock.Anything, "c1").Return(filledCart(), nil)
	d.catalog.EXPECT().Products(mock.Anything).Return(catalogProducts(), nil)
	d.quotes.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	d.carts.EXPECT().Delete(mock.Anything, "c1").Return(nil)
	d.flags.EXPECT().IsEnabled(mock.Anything, ports.FlagQuoteForwarding, true).Return(false)

	q, err := d.service().Submit(context.Background(), validInput)
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusReceived, q.Status)
	assert.Equal(t, []string{OutcomeStored}, d.metrics.quotes)
}

func TestQuoteService_Submit_RollsBackQuoteWhenCartClearFails(t *testing.T) {
	d := newQuoteDeps(t)

	d.carts.EXPECT().Get(mock.Anything, "c1").Return(filledCart(), nil)
	d.catalog.EXPECT().Products(mock.Anything).Return(catalogProducts(), nil)
	d.quotes.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	d.carts.EXPECT().Delete(mock.Anything, "c1").Return(errors.New("database is locked"))
	d.quotes.EXPECT().Delete(mock.Anything, "q-1").Return(nil)

	_, err := d.service().Submit(context.Background(), validInput)
	require.Error(t, err)

	step, ok := GetExecutionStep(err)
	require.True(t, ok)
	assert.Equal(t, StepArchive, step)
	assert.Contains(t, err.Error(), `action "clear cart" failed`)
	assert.Equal(t, []string{OutcomeRejected}, d.metrics.quotes)
}

func TestQuoteService_Submit_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input SubmitQuoteInput
		setup func(d *quoteDeps)
		step  ExecutionStep
		check func(error) bool
	}{
		{
			name:  "invalid email",
			input: SubmitQuoteInput{CartID: "c1", Contact: domain.Contact{Name: "X", Email: "nope"}},
			setup: func(*quoteDeps) {},
			step:  StepValidate,
			check: domain.IsValidation,
		},
		{
			name:  "no cart",
			input: SubmitQuoteInput{Contact: validInput.Contact},
			setup: func(*quoteDeps) {},
			step:  StepValidate,
			check: domain.IsValidation,
		},
		{
			name:  "expired cart",
			input: validInput,
			setup: func(d *quoteDeps) {
				d.carts.EXPECT().Get(mock.Anything, "c1").Return(nil, domain.NewNotFoundError("cart", "c1"))
				d.catalog.EXPECT().Products(mock.Anything).Return(catalogProducts(), nil).Maybe()
			},
			step:  StepPerform,
			check: domain.IsValidation,
		},
		{
			name:  "product left catalog",
			input: validInput,
			setup: func(d *quoteDeps) {
				c := filledCart()
				c.Items = append(c.Items, domain.CartItem{ProductID: "retired", Quantity: 1})
				d.carts.EXPECT().Get(mock.Anything, "c1").Return(c, nil)
				d.catalog.EXPECT().Products(mock.Anything).Return(catalogProducts(), nil)
			},
			step:  StepPerform,
			check: domain.IsNotFound,
		},
		{
			name:  "minimum order raised since adding",
			input: validInput,
			setup: func(d *quoteDeps) {
				products := catalogProducts()
				products[0].MinOrderQty = 1000
				d.carts.EXPECT().Get(mock.Anything, "c1").Return(filledCart(), nil)
				d.catalog.EXPECT().Products(mock.Anything).Return(products, nil)
			},
			step:  StepVerify,
			check: domain.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newQuoteDeps(t)
			tt.setup(d)

			_, err := d.service().Submit(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())

			step, ok := GetExecutionStep(err)
			require.True(t, ok)
			assert.Equal(t, tt.step, step)
		})
	}
}

func TestQuoteService_GetAndList(t *testing.T) {
	d := newQuoteDeps(t)

	stored := &domain.QuoteRequest{ID: "q-9", Status: domain.QuoteStatusForwarded}
	d.quotes.EXPECT().Get(mock.Anything, "q-9").Return(stored, nil)
	d.quotes.EXPECT().Get(mock.Anything, "q-0").Return(nil, domain.NewNotFoundError("quote request", "q-0"))
	d.quotes.EXPECT().List(mock.Anything, 0, 20).Return([]domain.QuoteRequest{*stored}, 1, nil)

	svc := d.service()

	q, err := svc.Get(context.Background(), "q-9")
	require.NoError(t, err)
	assert.Equal(t, stored, q)

	_, err = svc.Get(context.Background(), "q-0")
	assert.True(t, domain.IsNotFound(err))

	items, total, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
}
