package registry

import "context"

type settlementMarker struct{}

// markSettlement returns a context that flags everything below it as running
// inside an outbound settlement. The settler receives this context; if any
// code it calls re-enters a mutating ledger operation with it, the guard in
// that operation rejects the call before it can touch state or the write lock.
func markSettlement(ctx context.Context) context.Context {
	return context.WithValue(ctx, settlementMarker{}, true)
}

func inSettlement(ctx context.Context) bool {
	v, _ := ctx.Value(settlementMarker{}).(bool)
	return v
}
