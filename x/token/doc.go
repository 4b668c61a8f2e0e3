/*
Package token implements fungible asset accounts.

Every balance lives in its own single-asset account. An account owned
by a user is stored under a deterministic associated address derived
from (owner, ticker), so the account of a user for a given asset can
always be located without an index. Accounts without an owner are
keyless vaults managed by a custodian extension.

The Controller is the boundary other extensions use to move funds,
issue credits and retire accounts.
*/
package token
