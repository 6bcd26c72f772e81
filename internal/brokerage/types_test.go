package brokerage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain string", `"123 Main St"`, "123 Main St"},
		{"oneLine wins", `{"oneLine":"1 Oak Ave","address":"ignored","street":"x"}`, "1 Oak Ave"},
		{"address fallback", `{"address":"2 Elm St"}`, "2 Elm St"},
		{"component join", `{"street":"3 Pine Rd","city":"Springfield","state":"IL","zip":"62704"}`, "3 Pine Rd, Springfield, IL, 62704"},
		{"sparse components", `{"city":"Springfield","zip":"62704"}`, "Springfield, 62704"},
		{"empty object", `{}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Address
			require.NoError(t, json.Unmarshal([]byte(tc.in), &a))
			assert.Equal(t, tc.want, a.Line)
		})
	}
}

func TestTransactionUnmarshal(t *testing.T) {
	raw := `{"id":"tx-1","address":{"oneLine":"9 Birch Ln"},"checklistId":"cl-1","vaultId":"v-1"}`
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, "9 Birch Ln", tx.Address.Line)
	assert.Equal(t, "cl-1", tx.ChecklistID)
	assert.Equal(t, "v-1", tx.VaultID)
}

func TestVaultFileDisplayName(t *testing.T) {
	assert.Equal(t, "scan.pdf", VaultFile{ID: "f1", Filename: "scan.pdf", Name: "Scan"}.DisplayName())
	assert.Equal(t, "Scan", VaultFile{ID: "f1", Name: "Scan"}.DisplayName())
	assert.Equal(t, "f1.bin", VaultFile{ID: "f1"}.DisplayName())
}
