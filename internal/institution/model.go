// internal/institution/model.go
//
// Institution row and read projections.
//
// Context
// -------
// Wire and column names stay in Portuguese because the deployed
// front-ends and the database schema already speak them; Go identifiers
// are English.  `codigo` is the business key: unique, and immutable once
// the row exists (updates silently drop it).  `sigla` is unique as well.
//
// The Read projection adds two derived display fields the storage layer
// never sees: a formatted address line and a primary contact, both
// computed from the flexible JSON blocks.

package institution

import (
	"encoding/json"
	"strings"
	"time"
)

// Institution mirrors one row of `instituicoes`.
type Institution struct {
	ID          int64           `db:"id"                json:"id"`
	Code        string          `db:"codigo"            json:"codigo"`
	FullName    string          `db:"nome_completo"     json:"nome_completo"`
	ShortName   string          `db:"nome_abreviado"    json:"nome_abreviado"`
	Acronym     string          `db:"sigla"             json:"sigla"`
	Type        string          `db:"tipo"              json:"tipo"`
	CNPJ        *string         `db:"cnpj"              json:"cnpj"`
	LegalNature *string         `db:"natureza_juridica" json:"natureza_juridica"`
	Address     json.RawMessage `db:"endereco"          json:"endereco"`
	Contacts    json.RawMessage `db:"contatos"          json:"contatos"`
	Website     *string         `db:"website"           json:"website"`
	Active      bool            `db:"ativo"             json:"ativo"`
	CreatedAt   time.Time       `db:"created_at"        json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"        json:"updated_at"`
}

// uniqueKeys maps the table's unique indexes to the wire field each one
// guards, so constraint violations can carry a useful hint.
var uniqueKeys = map[string]string{
	"uq_instituicao_codigo": "codigo",
	"uq_instituicao_sigla":  "sigla",
}

// Read is the full API response shape: the row plus derived display
// fields.  Derived fields are best-effort; missing JSON keys yield "".
type Read struct {
	Institution
	FullAddress    string `json:"endereco_completo"`
	PrimaryContact string `json:"contato_principal"`
}

// NewRead computes the derived display fields from the JSON blocks.
func NewRead(in Institution) Read {
	return Read{
		Institution:    in,
		FullAddress:    formatAddress(in.Address),
		PrimaryContact: primaryContact(in.Contacts),
	}
}

// formatAddress joins logradouro, bairro, cidade/uf, and cep into one
// display line, skipping absent parts.
func formatAddress(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var addr struct {
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Cidade     string `json:"cidade"`
		UF         string `json:"uf"`
		CEP        string `json:"cep"`
	}
	if err := json.Unmarshal(raw, &addr); err != nil {
		return ""
	}

	parts := make([]string, 0, 4)
	if addr.Logradouro != "" {
		parts = append(parts, addr.Logradouro)
	}
	if addr.Bairro != "" {
		parts = append(parts, addr.Bairro)
	}
	switch {
	case addr.Cidade != "" && addr.UF != "":
		parts = append(parts, addr.Cidade+"/"+addr.UF)
	case addr.Cidade != "":
		parts = append(parts, addr.Cidade)
	}
	if addr.CEP != "" {
		parts = append(parts, "CEP "+addr.CEP)
	}
	return strings.Join(parts, ", ")
}

// primaryContact prefers the main email, then the main phone.
func primaryContact(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var c struct {
		EmailPrincipal    string `json:"email_principal"`
		TelefonePrincipal string `json:"telefone_principal"`
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return ""
	}
	if c.EmailPrincipal != "" {
		return c.EmailPrincipal
	}
	return c.TelefonePrincipal
}
