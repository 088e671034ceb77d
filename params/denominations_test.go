package params

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestGWeiToWei(t *testing.T) {
	got := GWeiToWei(10)
	want := uint256.NewInt(10 * GWei)
	if got.Cmp(want) != 0 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEffectiveGasPriceClampsToTip(t *testing.T) {
	baseFee := uint256.NewInt(100)
	feeCap := uint256.NewInt(1000)
	tipCap := uint256.NewInt(50)

	got := EffectiveGasPrice(feeCap, tipCap, baseFee)
	want := uint256.NewInt(150) // tip + baseFee, since headroom (900) > tip
	if got.Cmp(want) != 0 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEffectiveGasPriceClampsToHeadroom(t *testing.T) {
	baseFee := uint256.NewInt(900)
	feeCap := uint256.NewInt(1000)
	tipCap := uint256.NewInt(500)

	got := EffectiveGasPrice(feeCap, tipCap, baseFee)
	want := uint256.NewInt(1000) // headroom (100) < tip, so pay the full feeCap
	if got.Cmp(want) != 0 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEffectiveGasPriceBelowBaseFee(t *testing.T) {
	baseFee := uint256.NewInt(1000)
	feeCap := uint256.NewInt(500)
	tipCap := uint256.NewInt(10)

	got := EffectiveGasPrice(feeCap, tipCap, baseFee)
	if got.Cmp(feeCap) != 0 {
		t.Fatalf("expected feeCap to be returned when below baseFee, got %v", got)
	}
}

func TestAuthorizationListGasSetCodeExample(t *testing.T) {
	// Three authorizations, two targeting empty accounts: 3*12500 + 2*25000 = 87500.
	got := AuthorizationListGas(3, 2)
	if got != 87500 {
		t.Fatalf("got %d, want 87500", got)
	}
}
