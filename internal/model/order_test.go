package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPricing = Pricing{
	Prices:     map[TicketKind]int{KindAdult: 1500, KindSenior: 1200, KindStudent: 1000, KindChild: 800},
	MaxPerKind: 10,
}

func selectedOrder(t *testing.T) *Order {
	t.Helper()
	o := NewOrder("o1", "c1", 100)
	require.NoError(t, o.Select(Selection{MovieID: 42, MovieTitle: "Deadly Vows", Date: "2025-11-14", Time: "7:30 PM", VenueID: "mdt", VenueName: "Million Dollar Theatre"}, 101))
	return o
}

func TestOrder_HappyPath(t *testing.T) {
	o := selectedOrder(t)
	assert.Equal(t, StateSelect, o.State)

	require.NoError(t, o.Adjust(KindAdult, 2, testPricing, 102))
	require.NoError(t, o.Adjust(KindChild, 1, testPricing, 103))
	assert.Equal(t, 3, o.TotalTickets())
	assert.Equal(t, 3800, o.SubtotalCents)

	require.NoError(t, o.Proceed(104))
	assert.Equal(t, StateCheckout, o.State)

	require.NoError(t, o.Complete(Customer{Name: " Ana ", Email: "ana@example.com"}, "LAIFF25", 570, "LAIFF-ABC123", 105))
	assert.Equal(t, StateConfirmation, o.State)
	assert.Equal(t, "Ana", o.CustomerName)
	assert.Equal(t, 3230, o.TotalCents)
	assert.Equal(t, "LAIFF-ABC123", o.ConfirmationCode)
	assert.Equal(t, int64(105), o.UpdatedAt)
}

func TestOrder_AdjustClamps(t *testing.T) {
	o := selectedOrder(t)

	require.NoError(t, o.Adjust(KindSenior, -3, testPricing, 1))
	assert.Equal(t, 0, o.Senior)

	require.NoError(t, o.Adjust(KindSenior, 25, testPricing, 1))
	assert.Equal(t, 10, o.Senior)

	assert.ErrorIs(t, o.Adjust(TicketKind("vip"), 1, testPricing, 1), ErrInvalidTicketKind)
}

func TestOrder_SetCounts(t *testing.T) {
	o := selectedOrder(t)

	require.NoError(t, o.SetCounts(map[TicketKind]int{KindAdult: 11, KindStudent: -1, KindSenior: 2}, testPricing, 1))
	assert.Equal(t, 10, o.Adult)
	assert.Equal(t, 0, o.Student)
	assert.Equal(t, 2, o.Senior)
	assert.Equal(t, 17400, o.SubtotalCents)

	assert.ErrorIs(t, o.SetCounts(map[TicketKind]int{"vip": 1}, testPricing, 1), ErrInvalidTicketKind)
	assert.Equal(t, 10, o.Adult, "rejected update leaves counts alone")
}

func TestOrder_ProceedNeedsTickets(t *testing.T) {
	o := selectedOrder(t)
	assert.ErrorIs(t, o.Proceed(1), ErrNoTickets)
	assert.Equal(t, StateSelect, o.State)
}

func TestOrder_InvalidTransitions(t *testing.T) {
	o := NewOrder("o1", "c1", 1)
	assert.ErrorIs(t, o.Adjust(KindAdult, 1, testPricing, 1), ErrInvalidTransition)
	assert.ErrorIs(t, o.Proceed(1), ErrInvalidTransition)
	assert.ErrorIs(t, o.Back(1), ErrInvalidTransition)
	assert.ErrorIs(t, o.Complete(Customer{Name: "a", Email: "b"}, "", 0, "X", 1), ErrInvalidTransition)

	s := selectedOrder(t)
	assert.ErrorIs(t, s.Select(Selection{MovieTitle: "Other"}, 1), ErrInvalidTransition)
}

func TestOrder_CompleteRequiresCustomer(t *testing.T) {
	o := selectedOrder(t)
	require.NoError(t, o.Adjust(KindAdult, 1, testPricing, 1))
	require.NoError(t, o.Proceed(1))

	assert.ErrorIs(t, o.Complete(Customer{Name: "  ", Email: "a@b.c"}, "", 0, "X", 1), ErrCustomerRequired)
	assert.ErrorIs(t, o.Complete(Customer{Name: "A", Email: ""}, "", 0, "X", 1), ErrCustomerRequired)
	assert.Equal(t, StateCheckout, o.State)
}

func TestOrder_BackAndReset(t *testing.T) {
	o := selectedOrder(t)
	require.NoError(t, o.Adjust(KindAdult, 2, testPricing, 1))
	require.NoError(t, o.Proceed(1))

	require.NoError(t, o.Back(2))
	assert.Equal(t, StateSelect, o.State)
	assert.Equal(t, 2, o.Adult, "going back to select keeps tickets")

	require.NoError(t, o.Back(3))
	assert.Equal(t, StateBrowse, o.State)
	assert.Zero(t, o.TotalTickets())
	assert.Empty(t, o.MovieTitle)

	o = selectedOrder(t)
	require.NoError(t, o.Adjust(KindAdult, 1, testPricing, 1))
	require.NoError(t, o.Proceed(1))
	require.NoError(t, o.Complete(Customer{Name: "A", Email: "a@b.c"}, "", 0, "LAIFF-XYZ789", 1))

	o.Reset(9)
	assert.Equal(t, StateBrowse, o.State)
	assert.Empty(t, o.ConfirmationCode)
	assert.Empty(t, o.CustomerEmail)
	assert.Zero(t, o.TotalCents)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, int64(9), o.UpdatedAt)
}
