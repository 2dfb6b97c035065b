/*
Package escrow implements Storage Escrow contract.

Storage Escrow contract prices, collects and linearly releases payment for
time-bounded content storage. A user deposits native GAS sized to
file size × duration × rate. The service provider claims deposited funds as a
linear vesting stream proportional to the number of blocks passed since the
previous claim. The admin adjusts pricing and withdraws accumulated fees.

Contract account holds all deposited GAS. Running totals of deposited and
claimed funds are stored in the vault record, so that the outstanding
obligation is always TotalDeposited - TotalClaimed. GAS sent to the contract
directly (not through CreateDeposit or ExtendStorageDuration) is a vault
surplus available for fee withdrawal.

Time is measured in blocks. The number of blocks per day is set at
deployment, it's 5760 (15 second blocks) by default.

# Contract storage scheme

	| Key                               | Value                  |
	|-----------------------------------|------------------------|
	| "config"                          | serialized Config      |
	| "vault"                           | serialized Vault       |
	| "periodsPerDay"                   | integer                |
	| 'd' + depositor + sha256(cid)     | serialized Deposit     |

"pulling" key exists only while CreateDeposit or ExtendStorageDuration
transfers GAS from the depositor, so that the payment is not reported as
VaultFunded.

# Content identifiers

CIDv0 (base58btc sha2-256 multihash starting with "Qm") and CIDv1 are
accepted. CIDv1 must use one of the following multibase prefixes: 'f', 'F'
(base16), 'b', 'B' (base32), 'k', 'K' (base36) or 'z' (base58btc). Other
multibase encodings (base64 variants, base32hex, base58flickr, etc.) are
rejected with "invalid content identifier".

# Contract notifications

ConfigInitialized notification. This notification is produced once when the
escrow is initialized.

	ConfigInitialized:
	  - name: admin
	    type: Hash160
	  - name: rate
	    type: Integer
	  - name: minDuration
	    type: Integer
	  - name: withdrawalTarget
	    type: Hash160

DepositCreated notification. This notification is produced when a user
creates a new deposit. Slot is the block index the vesting starts from.

	DepositCreated:
	  - name: user
	    type: Hash160
	  - name: cid
	    type: String
	  - name: fileSize
	    type: Integer
	  - name: duration
	    type: Integer
	  - name: amount
	    type: Integer
	  - name: slot
	    type: Integer

StorageDurationExtended notification. This notification is produced when a
user prolongs an existing deposit. It contains both the increment and the
resulting totals.

	StorageDurationExtended:
	  - name: user
	    type: Hash160
	  - name: cid
	    type: String
	  - name: duration
	    type: Integer
	  - name: payment
	    type: Integer
	  - name: totalDuration
	    type: Integer
	  - name: totalAmount
	    type: Integer
	  - name: slot
	    type: Integer

RewardsClaimed notification. This notification is produced when the service
provider claims vested funds of a deposit.

	RewardsClaimed:
	  - name: depositor
	    type: Hash160
	  - name: cid
	    type: String
	  - name: target
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: totalClaimed
	    type: Integer
	  - name: slot
	    type: Integer

FeesWithdrawn notification. This notification is produced when the admin
withdraws fees.

	FeesWithdrawn:
	  - name: admin
	    type: Hash160
	  - name: target
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: slot
	    type: Integer

RateUpdated, MinDurationUpdated and ProviderUpdated notifications. These
notifications are produced on configuration changes and contain old and new
values.

	RateUpdated:
	  - name: oldRate
	    type: Integer
	  - name: newRate
	    type: Integer
	MinDurationUpdated:
	  - name: oldMinDuration
	    type: Integer
	  - name: newMinDuration
	    type: Integer
	ProviderUpdated:
	  - name: oldProvider
	    type: Hash160
	  - name: newProvider
	    type: Hash160

VaultFunded notification. This notification is produced when GAS is
transferred to the contract directly.

	VaultFunded:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package escrow
