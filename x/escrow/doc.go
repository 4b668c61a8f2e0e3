/*
Package escrow implements two-party custodial escrow on top of the
token extension.

Opening an escrow moves the deposit out of the depositor's associated
account into a vault: a keyless account at an address derived from the
(depositor, nonce) slot. No key pair exists for a vault address, so
custodied funds can only move through the escrow handlers. Settlement
pays the full amount to the receiving account fixed at open time,
abort returns it to the depositor. Both transitions are terminal and
exactly one of them can happen per escrow.

Escrows are referenced by a 28 byte value concatenating the depositor
address and the big endian nonce. Each slot holds at most one open
escrow, slots of settled or aborted escrows can be reused.
*/
package escrow
