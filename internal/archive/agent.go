package archive

import (
	"context"
	"log"
)

// LifecycleGroups are the transaction lifecycle categories an agent
// listing can be narrowed to; the default is their union.
var LifecycleGroups = []string{"OPEN", "CLOSED", "TERMINATED"}

// ValidLifecycle reports whether filter names a known lifecycle group.
func ValidLifecycle(filter string) bool {
	for _, g := range LifecycleGroups {
		if g == filter {
			return true
		}
	}
	return false
}

// ResolveAgentTransactions lists an agent's transaction ids across the
// selected lifecycle groups. A failing group is logged and skipped so
// one upstream hiccup does not empty the whole listing.
func ResolveAgentTransactions(ctx context.Context, src AgentSource, yentaID, lifecycleFilter string) ([]string, error) {
	lifecycles := LifecycleGroups
	if lifecycleFilter != "" && ValidLifecycle(lifecycleFilter) {
		lifecycles = []string{lifecycleFilter}
	}

	var ids []string
	for _, lifecycle := range lifecycles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		txs, err := src.ListAgentTransactions(ctx, yentaID, lifecycle)
		if err != nil {
			log.Printf("archive: listing %s transactions for %s: %v", lifecycle, yentaID, err)
			continue
		}
		for _, tx := range txs {
			if id := tx.Identifier(); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
