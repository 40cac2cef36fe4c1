// Package globalconfig holds the protocol-wide parameters that sit above
// any single market: the admin authority, its two-step rotation via
// nomination, the protocol fee receiver, and the default protocol fee
// share every market's Config.SyncGlobalConfig pulls from. It has no
// direct analogue in the teacher repo — nhbchain's governance lives in a
// separate governd service outside this pack's retrieval — so it is
// implemented fresh in the teacher's idiom: a flat struct plus setter
// methods returning *lendingerr.Error, grounded on
// programs/autara-program/src/processor/update_global_config.rs's
// accept_nomination / protocol_fee_share_in_bps / fee_receiver /
// nominated_admin update flow.
package globalconfig

import (
	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// GlobalConfig is the singleton account governing protocol-wide admin
// rotation and fee routing.
type GlobalConfig struct {
	Admin                 autarapubkey.Pubkey
	NominatedAdmin        autarapubkey.Pubkey
	FeeReceiver           autarapubkey.Pubkey
	ProtocolFeeShareInBps uint64
	Bump                  uint8
}

// Initialize builds a GlobalConfig with no pending nomination, mirroring
// create_global_config.rs's zero-initialized account plus the admin and
// fee receiver supplied at creation time.
func Initialize(admin, feeReceiver autarapubkey.Pubkey, protocolFeeShareInBps uint64, bump uint8) (GlobalConfig, error) {
	if admin.IsZero() {
		return GlobalConfig{}, lendingerr.New(lendingerr.CodeInvalidNomination, "admin must not be the zero pubkey")
	}
	if err := fixedpoint.ValidateBps(protocolFeeShareInBps); err != nil {
		return GlobalConfig{}, err
	}
	return GlobalConfig{
		Admin:                 admin,
		FeeReceiver:           feeReceiver,
		ProtocolFeeShareInBps: protocolFeeShareInBps,
		Bump:                  bump,
	}, nil
}

// IsInitialized reports whether the account carries a live admin, the Go
// analogue of is_initialized()'s admin() != ZEROED_PUBKEY check.
func (g GlobalConfig) IsInitialized() bool {
	return !g.Admin.IsZero()
}

// SetNominatedAdmin records candidate as the account allowed to upgrade
// itself into the admin seat via UpgradeNomination. Only the current admin
// may call this; the caller is responsible for that authorization check.
func (g *GlobalConfig) SetNominatedAdmin(candidate autarapubkey.Pubkey) {
	g.NominatedAdmin = candidate
}

// CanUpgradeNomination reports whether signer is the currently nominated
// admin and therefore permitted to call UpgradeNomination.
func (g GlobalConfig) CanUpgradeNomination(signer autarapubkey.Pubkey) bool {
	return !g.NominatedAdmin.IsZero() && g.NominatedAdmin == signer
}

// UpgradeNomination promotes the nominated admin into the admin seat and
// clears the nomination, completing the two-step rotation. Returns
// ErrInvalidNomination if there is no pending nomination to accept.
func (g *GlobalConfig) UpgradeNomination() error {
	if g.NominatedAdmin.IsZero() {
		return lendingerr.ErrInvalidNomination
	}
	g.Admin = g.NominatedAdmin
	g.NominatedAdmin = autarapubkey.Zero
	return nil
}

// SetFeeReceiver updates the account that redeemed protocol fees are paid
// to.
func (g *GlobalConfig) SetFeeReceiver(receiver autarapubkey.Pubkey) {
	g.FeeReceiver = receiver
}

// UpdateProtocolFeeShareInBps updates the default protocol fee share new
// markets sync from, rejecting a value outside [0, 10000].
func (g *GlobalConfig) UpdateProtocolFeeShareInBps(bps uint64) error {
	if err := fixedpoint.ValidateBps(bps); err != nil {
		return err
	}
	g.ProtocolFeeShareInBps = bps
	return nil
}
