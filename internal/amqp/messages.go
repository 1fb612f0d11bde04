package amqp

import (
	"encoding/json"
	"time"
)

// ExportRequestMessage asks the worker to produce one report. Dates are
// "2006-01-02"; Kind and Format use the export package labels. When
// AllAccounts is set the worker bundles one ledger per account instead
// of a single document; Account selects the single-ledger case.
type ExportRequestMessage struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	Kind         string    `json:"kind"`
	Format       string    `json:"format"`
	Account      string    `json:"account,omitempty"`
	Organization string    `json:"organization"`
	AllAccounts  bool      `json:"all_accounts"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewExportRequestMessage(from, to, kind, format, account, organization string, allAccounts bool) *ExportRequestMessage {
	return &ExportRequestMessage{
		From:         from,
		To:           to,
		Kind:         kind,
		Format:       format,
		Account:      account,
		Organization: organization,
		AllAccounts:  allAccounts,
		Timestamp:    time.Now(),
	}
}

func (m *ExportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExportRequestMessageFromJSON(data []byte) (*ExportRequestMessage, error) {
	var msg ExportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
