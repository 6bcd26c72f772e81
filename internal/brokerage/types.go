package brokerage

import (
	"encoding/json"
	"strings"
)

// Transaction is the slice of upstream transaction metadata the
// download workflow needs. Optional upstream fields decode to empty
// strings here so callers never re-guess the payload shape.
type Transaction struct {
	ID          string  `json:"id"`
	Address     Address `json:"address"`
	ChecklistID string  `json:"checklistId"`
	VaultID     string  `json:"vaultId"`
}

// Address arrives from the upstream either as a plain string or as a
// structured object; both decode to a single display line.
type Address struct {
	Line string
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.Line = s
		return nil
	}
	var obj struct {
		OneLine string `json:"oneLine"`
		Address string `json:"address"`
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	switch {
	case obj.OneLine != "":
		a.Line = obj.OneLine
	case obj.Address != "":
		a.Line = obj.Address
	default:
		parts := make([]string, 0, 4)
		for _, p := range []string{obj.Street, obj.City, obj.State, obj.Zip} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		a.Line = strings.Join(parts, ", ")
	}
	return nil
}

// ChecklistItem groups the document and vault references attached to
// one checklist entry.
type ChecklistItem struct {
	Name           string          `json:"name"`
	Documents      []Document      `json:"documents"`
	FileReferences []FileReference `json:"fileReferences"`
}

type Document struct {
	Name           string          `json:"name"`
	CurrentVersion DocumentVersion `json:"currentVersion"`
}

type DocumentVersion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FileReference struct {
	VaultID string `json:"vaultId"`
}

// VaultFile is one file inside a vault container.
type VaultFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Name     string `json:"name"`
}

// DisplayName resolves the best available filename, falling back to a
// synthetic one derived from the file id.
func (f VaultFile) DisplayName() string {
	switch {
	case f.Filename != "":
		return f.Filename
	case f.Name != "":
		return f.Name
	default:
		return f.ID + ".bin"
	}
}
