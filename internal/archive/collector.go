package archive

import (
	"context"
	"log"

	"github.com/opsview/dashboard-service/internal/brokerage"
	"github.com/opsview/dashboard-service/internal/util"
)

// File is one collected document, named and ready for the archive.
type File struct {
	Name    string
	Content []byte
}

// TransactionFiles is the outcome of collecting one transaction.
type TransactionFiles struct {
	TransactionID string
	Address       string
	FolderName    string
	Files         []File
}

// Result is the per-transaction outcome entry attached to the
// response, one per requested id in request order.
type Result struct {
	TransactionID string `json:"transactionId"`
	Address       string `json:"address,omitempty"`
	FileCount     *int   `json:"fileCount,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BatchOutput is a finalized archive plus its result metadata.
type BatchOutput struct {
	Zip        []byte
	Results    []Result
	TotalFiles int
}

// Collector walks a transaction's checklist documents and vault files
// and assembles them into archives. One collector is built per server,
// but all mutable collection state is request-scoped.
type Collector struct {
	source DocumentSource
}

func NewCollector(source DocumentSource) *Collector {
	return &Collector{source: source}
}

// Collect gathers every resolvable file for one transaction: checklist
// documents first, then vault-container files. A failed metadata or
// checklist fetch fails the transaction; a single unfetchable document
// is logged and skipped.
func (c *Collector) Collect(ctx context.Context, transactionID string) (TransactionFiles, error) {
	tx, err := c.source.GetTransaction(ctx, transactionID)
	if err != nil {
		return TransactionFiles{}, err
	}
	folderName := util.SanitizeName(tx.Address.Line)
	if tx.Address.Line == "" {
		folderName = transactionID
	}

	items, err := c.source.GetChecklistItems(ctx, tx.ChecklistID)
	if err != nil {
		return TransactionFiles{}, err
	}

	names := util.NewNameAllocator()
	var files []File

	for _, doc := range extractDocuments(items) {
		if ctx.Err() != nil {
			return TransactionFiles{}, ctx.Err()
		}
		content, err := c.fetchDocument(ctx, doc.versionID)
		if err != nil {
			log.Printf("archive: skipping checklist document %s: %v", doc.versionID, err)
			continue
		}
		files = append(files, File{Name: names.Claim(util.SanitizeName(doc.name)), Content: content})
	}

	for _, vaultID := range vaultIDs(items, tx.VaultID) {
		vaultFiles, err := c.source.ListVaultFiles(ctx, vaultID)
		if err != nil {
			log.Printf("archive: skipping vault %s: %v", vaultID, err)
			continue
		}
		for _, vf := range vaultFiles {
			if ctx.Err() != nil {
				return TransactionFiles{}, ctx.Err()
			}
			content, err := c.fetchVaultFile(ctx, vf.ID)
			if err != nil {
				log.Printf("archive: skipping vault file %s: %v", vf.ID, err)
				continue
			}
			files = append(files, File{Name: names.Claim(util.SanitizeName(vf.DisplayName())), Content: content})
		}
	}

	return TransactionFiles{
		TransactionID: transactionID,
		Address:       tx.Address.Line,
		FolderName:    folderName,
		Files:         files,
	}, nil
}

// CollectMany runs Collect for every id in order and streams the
// outcomes into one archive. One failing transaction becomes an error
// entry in its result slot and never aborts the batch; only context
// cancellation (the job deadline) does.
func (c *Collector) CollectMany(ctx context.Context, transactionIDs []string) (BatchOutput, error) {
	builder := NewBuilder()
	results := make([]Result, 0, len(transactionIDs))
	multi := len(transactionIDs) > 1
	folders := util.NewNameAllocator()

	for _, txID := range transactionIDs {
		if err := ctx.Err(); err != nil {
			return BatchOutput{}, err
		}
		tf, err := c.Collect(ctx, txID)
		if err != nil {
			if ctx.Err() != nil {
				return BatchOutput{}, ctx.Err()
			}
			results = append(results, Result{TransactionID: txID, Error: err.Error()})
			continue
		}

		prefix := ""
		if multi {
			folder := tf.FolderName
			// Distinct transactions sharing an address must stay
			// distinguishable, so collisions get an id suffix rather
			// than a counter.
			if folders.Has(folder) {
				folder = folder + " (" + shortID(txID) + ")"
			}
			folders.Claim(folder)
			prefix = folder + "/"
		}
		for _, f := range tf.Files {
			if err := builder.Add(prefix+f.Name, f.Content); err != nil {
				return BatchOutput{}, err
			}
		}
		n := len(tf.Files)
		results = append(results, Result{TransactionID: txID, Address: tf.Address, FileCount: &n})
	}

	zipBytes, err := builder.Close()
	if err != nil {
		return BatchOutput{}, err
	}
	return BatchOutput{Zip: zipBytes, Results: results, TotalFiles: builder.FileCount()}, nil
}

func (c *Collector) fetchDocument(ctx context.Context, versionID string) ([]byte, error) {
	url, err := c.source.GetDocumentDownloadURL(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return c.source.DownloadContent(ctx, url)
}

func (c *Collector) fetchVaultFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.source.GetFileDownloadURL(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return c.source.DownloadContent(ctx, url)
}

type documentRef struct {
	versionID string
	name      string
}

// extractDocuments flattens the checklist's document references,
// keeping only those with a resolvable current version.
func extractDocuments(items []brokerage.ChecklistItem) []documentRef {
	var docs []documentRef
	for _, item := range items {
		for _, doc := range item.Documents {
			versionID := doc.CurrentVersion.ID
			if versionID == "" {
				continue
			}
			name := doc.Name
			if name == "" {
				name = doc.CurrentVersion.Name
			}
			if name == "" {
				name = versionID + ".bin"
			}
			docs = append(docs, documentRef{versionID: versionID, name: name})
		}
	}
	return docs
}

// vaultIDs collects the distinct vault containers referenced by the
// checklist, plus the transaction's own container when not already
// listed.
func vaultIDs(items []brokerage.ChecklistItem, txVaultID string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, item := range items {
		for _, ref := range item.FileReferences {
			if ref.VaultID == "" {
				continue
			}
			if _, ok := seen[ref.VaultID]; ok {
				continue
			}
			seen[ref.VaultID] = struct{}{}
			ids = append(ids, ref.VaultID)
		}
	}
	if txVaultID != "" {
		if _, ok := seen[txVaultID]; !ok {
			ids = append(ids, txVaultID)
		}
	}
	return ids
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
