package amqp

import "testing"

func TestExportRequestMessageRoundTrip(t *testing.T) {
	msg := NewExportRequestMessage("2024-04-01", "2025-03-31", "general_ledger", "pdf", "", "山田商店", true)
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ExportRequestMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != "general_ledger" || got.Format != "pdf" || !got.AllAccounts {
		t.Fatalf("message mangled: %+v", got)
	}
}

func TestExportRequestMessageSingleAccount(t *testing.T) {
	msg := NewExportRequestMessage("2024-04-01", "2025-03-31", "general_ledger", "csv", "売上高", "", false)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ExportRequestMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Account != "売上高" || got.AllAccounts {
		t.Fatalf("message mangled: %+v", got)
	}
}

func TestExportRequestMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExportRequestMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
