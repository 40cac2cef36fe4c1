// Package event defines the typed, per-operation events every market
// mutation emits, and their flattening into the generic envelope an
// external indexer consumes. It generalises the teacher's
// core/types.Event envelope and native/escrow/events.go's
// constructor-per-event-kind convention to the lending core's mutation
// set.
package event

import (
	"strconv"

	"github.com/autara-finance/lending-core/autarapubkey"
)

const (
	TypeSupply             = "lending.supply"
	TypeWithdraw           = "lending.withdraw"
	TypeBorrow             = "lending.borrow"
	TypeRepay              = "lending.repay"
	TypeDepositCollateral  = "lending.deposit_collateral"
	TypeWithdrawCollateral = "lending.withdraw_collateral"
	TypeBorrowAndDeposit   = "lending.borrow_and_deposit"
	TypeWithdrawAndRepay   = "lending.withdraw_and_repay"
	TypeLiquidate          = "lending.liquidate"
	TypeSocializeLoss      = "lending.socialize_loss"
	TypeDonateSupply       = "lending.donate_supply"
	TypeRedeemCuratorFees  = "lending.redeem_curator_fees"
	TypeRedeemProtocolFees = "lending.redeem_protocol_fees"
)

// Event is the generic envelope every typed event flattens to, matching
// the teacher's core/types.Event shape.
type Event struct {
	Type       string
	Attributes map[string]string
}

// VaultSnapshot is the post-state vault view every event carries so an
// external indexer can derive share prices without replaying history.
type VaultSnapshot struct {
	TotalDepositedAtoms uint64
	TotalShares         uint64
	TotalBorrowedAtoms  uint64
	TotalBorrowShares   uint64
}

func (s VaultSnapshot) attrs(into map[string]string) {
	into["total_deposited_atoms"] = strconv.FormatUint(s.TotalDepositedAtoms, 10)
	into["total_shares"] = strconv.FormatUint(s.TotalShares, 10)
	into["total_borrowed_atoms"] = strconv.FormatUint(s.TotalBorrowedAtoms, 10)
	into["total_borrow_shares"] = strconv.FormatUint(s.TotalBorrowShares, 10)
}

// Base carries the attributes every event shares: the market key, and when
// the operation ran against a position, the position key and authority.
type Base struct {
	Market    autarapubkey.Pubkey
	Position  autarapubkey.Pubkey
	Authority autarapubkey.Pubkey
	Vault     VaultSnapshot
}

func (b Base) attrs() map[string]string {
	m := map[string]string{
		"market": b.Market.String(),
	}
	if !b.Position.IsZero() {
		m["position"] = b.Position.String()
	}
	if !b.Authority.IsZero() {
		m["authority"] = b.Authority.String()
	}
	b.Vault.attrs(m)
	return m
}

// Supply is emitted by the lend operation.
type Supply struct {
	Base
	Mint         autarapubkey.Pubkey
	AtomsDeposit uint64
	SharesMinted uint64
}

// NewSupplyEvent constructs the event emitted by a successful lend.
func NewSupplyEvent(base Base, mint autarapubkey.Pubkey, atomsDeposit, sharesMinted uint64) Supply {
	return Supply{Base: base, Mint: mint, AtomsDeposit: atomsDeposit, SharesMinted: sharesMinted}
}

// Flatten renders the event into the generic envelope.
func (e Supply) Flatten() Event {
	attrs := e.attrs()
	attrs["mint"] = e.Mint.String()
	attrs["atoms_deposited"] = strconv.FormatUint(e.AtomsDeposit, 10)
	attrs["shares_minted"] = strconv.FormatUint(e.SharesMinted, 10)
	return Event{Type: TypeSupply, Attributes: attrs}
}

// Withdraw is emitted by the supply withdraw operation.
type Withdraw struct {
	Base
	Mint          autarapubkey.Pubkey
	AtomsReturned uint64
	SharesBurned  uint64
}

// NewWithdrawEvent constructs the event emitted by a successful supply withdrawal.
func NewWithdrawEvent(base Base, mint autarapubkey.Pubkey, atomsReturned, sharesBurned uint64) Withdraw {
	return Withdraw{Base: base, Mint: mint, AtomsReturned: atomsReturned, SharesBurned: sharesBurned}
}

func (e Withdraw) Flatten() Event {
	attrs := e.attrs()
	attrs["mint"] = e.Mint.String()
	attrs["atoms_returned"] = strconv.FormatUint(e.AtomsReturned, 10)
	attrs["shares_burned"] = strconv.FormatUint(e.SharesBurned, 10)
	return Event{Type: TypeWithdraw, Attributes: attrs}
}

// Borrow is emitted by the borrow operation.
type Borrow struct {
	Base
	Mint          autarapubkey.Pubkey
	AtomsBorrowed uint64
	SharesMinted  uint64
}

// NewBorrowEvent constructs the event emitted by a successful borrow.
func NewBorrowEvent(base Base, mint autarapubkey.Pubkey, atomsBorrowed, sharesMinted uint64) Borrow {
	return Borrow{Base: base, Mint: mint, AtomsBorrowed: atomsBorrowed, SharesMinted: sharesMinted}
}

func (e Borrow) Flatten() Event {
	attrs := e.attrs()
	attrs["mint"] = e.Mint.String()
	attrs["atoms_borrowed"] = strconv.FormatUint(e.AtomsBorrowed, 10)
	attrs["shares_minted"] = strconv.FormatUint(e.SharesMinted, 10)
	return Event{Type: TypeBorrow, Attributes: attrs}
}

// Repay is emitted by the repay/repay_all operation.
type Repay struct {
	Base
	Mint         autarapubkey.Pubkey
	AtomsRepaid  uint64
	SharesBurned uint64
}

// NewRepayEvent constructs the event emitted by a successful repay.
func NewRepayEvent(base Base, mint autarapubkey.Pubkey, atomsRepaid, sharesBurned uint64) Repay {
	return Repay{Base: base, Mint: mint, AtomsRepaid: atomsRepaid, SharesBurned: sharesBurned}
}

func (e Repay) Flatten() Event {
	attrs := e.attrs()
	attrs["mint"] = e.Mint.String()
	attrs["atoms_repaid"] = strconv.FormatUint(e.AtomsRepaid, 10)
	attrs["shares_burned"] = strconv.FormatUint(e.SharesBurned, 10)
	return Event{Type: TypeRepay, Attributes: attrs}
}

// DepositCollateral is emitted by the deposit_collateral operation.
type DepositCollateral struct {
	Base
	Mint         autarapubkey.Pubkey
	AtomsDeposit uint64
}

// NewDepositCollateralEvent constructs the event emitted by a successful collateral deposit.
func NewDepositCollateralEvent(base Base, mint autarapubkey.Pubkey, atomsDeposit uint64) DepositCollateral {
	return DepositCollateral{Base: base, Mint: mint, AtomsDeposit: atomsDeposit}
}

func (e DepositCollateral) Flatten() Event {
	attrs := e.attrs()
	attrs["mint"] = e.Mint.String()
	attrs["atoms_deposited"] = strconv.FormatUint(e.AtomsDeposit, 10)
	return Event{Type: TypeDepositCollateral, Attributes: attrs}
}

// WithdrawCollateral is emitted by the withdraw_collateral operation.
type WithdrawCollateral struct {
	Base
	Mint          autarapubkey.Pubkey
	AtomsReturned uint64
}

// NewWithdrawCollateralEvent constructs the event emitted by a successful collateral withdrawal.
func NewWithdrawCollateralEvent(base Base, mint autarapubkey.Pubkey, atomsReturned uint64) WithdrawCollateral {
	return WithdrawCollateral{Base: base, Mint: mint, AtomsReturned: atomsReturned}
}

func (e WithdrawCollateral) Flatten() Event {
	attrs := e.attrs()
	attrs["mint"] = e.Mint.String()
	attrs["atoms_returned"] = strconv.FormatUint(e.AtomsReturned, 10)
	return Event{Type: TypeWithdrawCollateral, Attributes: attrs}
}

// Liquidate is emitted by the liquidate operation.
type Liquidate struct {
	Base
	Liquidator       autarapubkey.Pubkey
	RepayAtoms       uint64
	SeizedCollateral uint64
}

// NewLiquidateEvent constructs the event emitted by a successful liquidation.
func NewLiquidateEvent(base Base, liquidator autarapubkey.Pubkey, repayAtoms, seizedCollateral uint64) Liquidate {
	return Liquidate{Base: base, Liquidator: liquidator, RepayAtoms: repayAtoms, SeizedCollateral: seizedCollateral}
}

func (e Liquidate) Flatten() Event {
	attrs := e.attrs()
	attrs["liquidator"] = e.Liquidator.String()
	attrs["repay_atoms"] = strconv.FormatUint(e.RepayAtoms, 10)
	attrs["seized_collateral_atoms"] = strconv.FormatUint(e.SeizedCollateral, 10)
	return Event{Type: TypeLiquidate, Attributes: attrs}
}

// SocializeLoss is emitted by the socialize_loss operation.
type SocializeLoss struct {
	Base
	DebtSocialized uint64
}

// NewSocializeLossEvent constructs the event emitted by a successful bad-debt write-off.
func NewSocializeLossEvent(base Base, debtSocialized uint64) SocializeLoss {
	return SocializeLoss{Base: base, DebtSocialized: debtSocialized}
}

func (e SocializeLoss) Flatten() Event {
	attrs := e.attrs()
	attrs["debt_socialized_atoms"] = strconv.FormatUint(e.DebtSocialized, 10)
	return Event{Type: TypeSocializeLoss, Attributes: attrs}
}

// DonateSupply is emitted by the donate_supply_atoms operation.
type DonateSupply struct {
	Base
	Donor        autarapubkey.Pubkey
	AtomsDonated uint64
}

// NewDonateSupplyEvent constructs the event emitted by a successful donation.
func NewDonateSupplyEvent(base Base, donor autarapubkey.Pubkey, atomsDonated uint64) DonateSupply {
	return DonateSupply{Base: base, Donor: donor, AtomsDonated: atomsDonated}
}

func (e DonateSupply) Flatten() Event {
	attrs := e.attrs()
	attrs["donor"] = e.Donor.String()
	attrs["atoms_donated"] = strconv.FormatUint(e.AtomsDonated, 10)
	return Event{Type: TypeDonateSupply, Attributes: attrs}
}

// BorrowAndDeposit is emitted by the combined borrow_deposit_apl
// operation: a borrow against existing collateral only, followed by a
// collateral deposit, with an optional user callback sandwiched between
// the two.
type BorrowAndDeposit struct {
	Base
	SupplyMint     autarapubkey.Pubkey
	CollateralMint autarapubkey.Pubkey
	AtomsBorrowed  uint64
	SharesMinted   uint64
	AtomsDeposited uint64
}

// NewBorrowAndDepositEvent constructs the event emitted by a successful
// combined borrow-and-deposit.
func NewBorrowAndDepositEvent(base Base, supplyMint, collateralMint autarapubkey.Pubkey, atomsBorrowed, sharesMinted, atomsDeposited uint64) BorrowAndDeposit {
	return BorrowAndDeposit{
		Base:           base,
		SupplyMint:     supplyMint,
		CollateralMint: collateralMint,
		AtomsBorrowed:  atomsBorrowed,
		SharesMinted:   sharesMinted,
		AtomsDeposited: atomsDeposited,
	}
}

func (e BorrowAndDeposit) Flatten() Event {
	attrs := e.attrs()
	attrs["supply_mint"] = e.SupplyMint.String()
	attrs["collateral_mint"] = e.CollateralMint.String()
	attrs["atoms_borrowed"] = strconv.FormatUint(e.AtomsBorrowed, 10)
	attrs["shares_minted"] = strconv.FormatUint(e.SharesMinted, 10)
	attrs["atoms_deposited"] = strconv.FormatUint(e.AtomsDeposited, 10)
	return Event{Type: TypeBorrowAndDeposit, Attributes: attrs}
}

// WithdrawAndRepay is emitted by the combined withdraw_repay_apl
// operation: a collateral withdrawal checked against existing debt only,
// followed by a repay, with an optional user callback sandwiched between
// the two.
type WithdrawAndRepay struct {
	Base
	SupplyMint     autarapubkey.Pubkey
	CollateralMint autarapubkey.Pubkey
	AtomsWithdrawn uint64
	AtomsRepaid    uint64
	SharesBurned   uint64
}

// NewWithdrawAndRepayEvent constructs the event emitted by a successful
// combined withdraw-and-repay.
func NewWithdrawAndRepayEvent(base Base, supplyMint, collateralMint autarapubkey.Pubkey, atomsWithdrawn, atomsRepaid, sharesBurned uint64) WithdrawAndRepay {
	return WithdrawAndRepay{
		Base:           base,
		SupplyMint:     supplyMint,
		CollateralMint: collateralMint,
		AtomsWithdrawn: atomsWithdrawn,
		AtomsRepaid:    atomsRepaid,
		SharesBurned:   sharesBurned,
	}
}

func (e WithdrawAndRepay) Flatten() Event {
	attrs := e.attrs()
	attrs["supply_mint"] = e.SupplyMint.String()
	attrs["collateral_mint"] = e.CollateralMint.String()
	attrs["atoms_withdrawn"] = strconv.FormatUint(e.AtomsWithdrawn, 10)
	attrs["atoms_repaid"] = strconv.FormatUint(e.AtomsRepaid, 10)
	attrs["shares_burned"] = strconv.FormatUint(e.SharesBurned, 10)
	return Event{Type: TypeWithdrawAndRepay, Attributes: attrs}
}

// RedeemFees is emitted by redeem_curator_fees and redeem_protocol_fees,
// discriminated by the kind passed to its constructor.
type RedeemFees struct {
	Base
	Recipient     autarapubkey.Pubkey
	AtomsRedeemed uint64
	kind          string
}

// NewRedeemCuratorFeesEvent constructs the curator-fee variant of RedeemFees.
func NewRedeemCuratorFeesEvent(base Base, recipient autarapubkey.Pubkey, atoms uint64) RedeemFees {
	return RedeemFees{Base: base, Recipient: recipient, AtomsRedeemed: atoms, kind: TypeRedeemCuratorFees}
}

// NewRedeemProtocolFeesEvent constructs the protocol-fee variant of RedeemFees.
func NewRedeemProtocolFeesEvent(base Base, recipient autarapubkey.Pubkey, atoms uint64) RedeemFees {
	return RedeemFees{Base: base, Recipient: recipient, AtomsRedeemed: atoms, kind: TypeRedeemProtocolFees}
}

func (e RedeemFees) Flatten() Event {
	attrs := e.attrs()
	attrs["recipient"] = e.Recipient.String()
	attrs["atoms_redeemed"] = strconv.FormatUint(e.AtomsRedeemed, 10)
	return Event{Type: e.kind, Attributes: attrs}
}

// NewBase constructs the shared attributes every event flattens with.
func NewBase(marketKey, positionKey, authority autarapubkey.Pubkey, snapshot VaultSnapshot) Base {
	return Base{Market: marketKey, Position: positionKey, Authority: authority, Vault: snapshot}
}
