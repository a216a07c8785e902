package parsecache

import (
	"testing"
	"time"

	"github.com/lorecheck/lorecheck/chronotext"
)

func TestParseFunc_Memoizes(t *testing.T) {
	cache := New(time.Minute, time.Minute)
	parse := cache.ParseFunc()

	first := parse("2024-03-02", chronotext.Options{})
	second := parse("2024-03-02", chronotext.Options{})

	if !first.Valid() || !second.Valid() {
		t.Fatalf("Expected valid parses, got %q / %q", first.Error, second.Error)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected one cached entry, got %d", cache.Len())
	}
	if chronotext.Millis(*first.Start) != chronotext.Millis(*second.Start) {
		t.Error("Expected identical cached result")
	}
}

func TestParseFunc_KeyIncludesOptions(t *testing.T) {
	cache := New(time.Minute, time.Minute)
	parse := cache.ParseFunc()

	ref1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	ref2 := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	first := parse("tomorrow", chronotext.Options{ReferenceDate: ref1})
	second := parse("tomorrow", chronotext.Options{ReferenceDate: ref2})

	if !first.Valid() || !second.Valid() {
		t.Fatalf("Expected valid parses, got %q / %q", first.Error, second.Error)
	}
	if cache.Len() != 2 {
		t.Errorf("Expected separate entries per reference anchor, got %d", cache.Len())
	}
	if first.Start.Equal(*second.Start) {
		t.Error("Expected different instants for different anchors")
	}
}

func TestFlush(t *testing.T) {
	cache := New(time.Minute, time.Minute)
	parse := cache.ParseFunc()
	parse("2024-03-02", chronotext.Options{})

	cache.Flush()
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after flush, got %d", cache.Len())
	}
}

func TestParseFunc_CachesFailuresToo(t *testing.T) {
	cache := New(time.Minute, time.Minute)
	parse := cache.ParseFunc()

	pd := parse("not a date", chronotext.Options{})
	if pd.Error != chronotext.ErrorUnparsed {
		t.Fatalf("Expected ErrorUnparsed, got %q", pd.Error)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected failures cached as data, got %d entries", cache.Len())
	}
}
