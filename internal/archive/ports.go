package archive

import (
	"context"

	"github.com/opsview/dashboard-service/internal/brokerage"
)

// DocumentSource is everything the collector needs from the upstream
// document clients. *brokerage.Client satisfies it; tests substitute
// fakes.
type DocumentSource interface {
	GetTransaction(ctx context.Context, id string) (brokerage.Transaction, error)
	GetChecklistItems(ctx context.Context, checklistID string) ([]brokerage.ChecklistItem, error)
	GetDocumentDownloadURL(ctx context.Context, versionID string) (string, error)
	ListVaultFiles(ctx context.Context, vaultID string) ([]brokerage.VaultFile, error)
	GetFileDownloadURL(ctx context.Context, fileID string) (string, error)
	DownloadContent(ctx context.Context, url string) ([]byte, error)
}

// AgentSource resolves an agent's transaction ids for the batch
// endpoint.
type AgentSource interface {
	ListAgentTransactions(ctx context.Context, yentaID, lifecycle string) ([]brokerage.AgentTransaction, error)
}
