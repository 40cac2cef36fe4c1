package pda

import (
	"testing"

	"github.com/autara-finance/lending-core/autarapubkey"
)

func pk(b byte) autarapubkey.Pubkey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return autarapubkey.MustNew(raw[:])
}

func TestFindMarketPDAIsDeterministic(t *testing.T) {
	program := pk(1)
	curator := pk(2)
	supply := pk(3)
	collateral := pk(4)

	addr1, bump1 := FindMarketPDA(program, curator, supply, collateral, 0)
	addr2, bump2 := FindMarketPDA(program, curator, supply, collateral, 0)
	if addr1 != addr2 || bump1 != bump2 {
		t.Fatalf("expected deterministic derivation, got (%s,%d) vs (%s,%d)", addr1, bump1, addr2, bump2)
	}

	other, _ := FindMarketPDA(program, curator, supply, collateral, 1)
	if other == addr1 {
		t.Fatalf("expected different index to derive a different address")
	}
}

func TestFindSupplyAndBorrowPositionPDAsDiffer(t *testing.T) {
	program := pk(1)
	market := pk(5)
	authority := pk(6)

	supplyAddr, _ := FindSupplyPositionPDA(program, market, authority)
	borrowAddr, _ := FindBorrowPositionPDA(program, market, authority)
	if supplyAddr == borrowAddr {
		t.Fatalf("expected supply and borrow position PDAs to differ")
	}
}

func TestFindGlobalConfigPDAIsStable(t *testing.T) {
	program := pk(7)
	addr1, bump1 := FindGlobalConfigPDA(program)
	addr2, bump2 := FindGlobalConfigPDA(program)
	if addr1 != addr2 || bump1 != bump2 {
		t.Fatalf("expected stable global config derivation")
	}
}
