package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// TestRunOfferCreate_SideRequired is NOT parallel: mutates package-level flag globals.
func TestRunOfferCreate_SideRequired(t *testing.T) {
	origBuy, origSell := offerBuy, offerSell
	defer func() { offerBuy, offerSell = origBuy, origSell }()

	tests := []struct {
		name string
		buy  bool
		sell bool
	}{
		{name: "neither side", buy: false, sell: false},
		{name: "both sides", buy: true, sell: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offerBuy = tc.buy
			offerSell = tc.sell

			err := runOfferCreate(offerCreateCmd, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, scriperr.ErrInvalidInput)
		})
	}
}
