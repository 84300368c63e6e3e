package model

import (
	"testing"
)

func TestSymbolListValueScan(t *testing.T) {
	list := SymbolList{"AAPL", "MSFT", "BRK.B"}

	raw, err := list.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw.([]byte)) != `["AAPL","MSFT","BRK.B"]` {
		t.Fatalf("unexpected JSON encoding: %s", raw)
	}

	var scanned SymbolList
	if err := scanned.Scan(raw); err != nil {
		t.Fatalf("unexpected error scanning []byte: %v", err)
	}
	if len(scanned) != 3 || scanned[0] != "AAPL" || scanned[2] != "BRK.B" {
		t.Fatalf("round trip lost order or elements: %+v", scanned)
	}

	// postgres jsonb can surface as string
	var fromString SymbolList
	if err := fromString.Scan(`["TSLA"]`); err != nil {
		t.Fatalf("unexpected error scanning string: %v", err)
	}
	if len(fromString) != 1 || fromString[0] != "TSLA" {
		t.Fatalf("unexpected scan result: %+v", fromString)
	}
}

func TestSymbolListScanNil(t *testing.T) {
	var list SymbolList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("nil column should scan to an empty list, got %+v", list)
	}
}

func TestSymbolListScanRejectsUnknownType(t *testing.T) {
	var list SymbolList
	if err := list.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}

func TestWatchListCreateModel(t *testing.T) {
	payload := WatchListCreate{UserID: 1, Name: "Tech"}
	wl, err := payload.Model()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wl.StockSymbols == nil {
		t.Fatalf("symbols should default to an empty list, not nil")
	}

	if _, err := (WatchListCreate{Name: "no owner"}).Model(); err == nil {
		t.Fatalf("expected validation error for missing user_id")
	}
}

func TestWatchListUpdateReplacesSymbols(t *testing.T) {
	wl := &WatchList{UserID: 1, Name: "Tech", StockSymbols: SymbolList{"AAPL", "MSFT"}}

	symbols := []string{"NVDA"}
	update := WatchListUpdate{StockSymbols: &symbols}
	update.Apply(wl)

	if len(wl.StockSymbols) != 1 || wl.StockSymbols[0] != "NVDA" {
		t.Fatalf("symbols should be replaced wholesale, got %+v", wl.StockSymbols)
	}
	if wl.Name != "Tech" {
		t.Fatalf("absent fields must stay untouched")
	}
}
