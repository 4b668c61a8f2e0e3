package custodiatest

import (
	"context"
	"fmt"

	"github.com/custodia-one/custodia"
)

// Auth is a test double implementing the x.Authenticator interface.
//
// It authenticates every referenced condition, ignoring the context.
// Set Signer for the common single signer case, or Signers for
// several. When both are set all of them are considered.
type Auth struct {
	// Signer authenticates a single signer.
	Signer custodia.Condition

	// Signers authenticates multiple signers.
	Signers []custodia.Condition
}

func (a *Auth) GetConditions(custodia.Context) []custodia.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx custodia.Context, addr custodia.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a test double implementing the x.Authenticator interface,
// storing and retrieving the conditions on the context.
type CtxAuth struct {
	// Key addresses the conditions within the context. Only string
	// keys are supported.
	Key string
}

func (a *CtxAuth) SetConditions(ctx custodia.Context, perms ...custodia.Condition) custodia.Context {
	return context.WithValue(ctx, a.Key, perms)
}

func (a *CtxAuth) GetConditions(ctx custodia.Context) []custodia.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]custodia.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []custodia.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx custodia.Context, addr custodia.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
