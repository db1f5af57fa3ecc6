package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEffectivePriceNoOffer(t *testing.T) {
	t.Parallel()

	base := decimal.RequireFromString("49.99")
	require.True(t, EffectivePrice(base, 0).Equal(base))
	require.True(t, EffectivePrice(base, -5).Equal(base))
}

func TestEffectivePriceWithOffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base  string
		offer int
		want  string
	}{
		{base: "100.00", offer: 25, want: "75.00"},
		{base: "100.00", offer: 100, want: "0.00"},
		{base: "10.00", offer: 33, want: "6.70"},
		{base: "0.99", offer: 50, want: "0.495"},
		{base: "19.95", offer: 10, want: "17.955"},
	}

	for _, tt := range tests {
		base := decimal.RequireFromString(tt.base)
		want := decimal.RequireFromString(tt.want)
		got := EffectivePrice(base, tt.offer)
		require.Truef(t, got.Equal(want), "%s at %d%%: expected %s, got %s", tt.base, tt.offer, tt.want, got)
	}
}

func TestExpiryDates(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	yesterday := now.AddDate(0, 0, -1)
	require.True(t, IsExpired(&yesterday, now))
	require.False(t, IsExpiringSoon(&yesterday, now))

	inThree := now.AddDate(0, 0, 3)
	require.False(t, IsExpired(&inThree, now))
	require.True(t, IsExpiringSoon(&inThree, now))

	inTen := now.AddDate(0, 0, 10)
	require.False(t, IsExpired(&inTen, now))
	require.False(t, IsExpiringSoon(&inTen, now))

	require.False(t, IsExpired(nil, now))
	require.False(t, IsExpiringSoon(nil, now))
}

func TestExpiryWindowBoundary(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	exactlySeven := now.AddDate(0, 0, 7)
	require.True(t, IsExpiringSoon(&exactlySeven, now))
}
