package parser

import (
	"reflect"
	"testing"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

func TestClassifySegmentsByFieldKeywords(t *testing.T) {
	classifier := NewClassifier(testCatalog(t))

	buckets, err := classifier.Classify([]string{"ціна", "100", "адреса", "вулиця", "шевченка"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	want := domain.Buckets{
		"price":   {"100"},
		"address": {"вулиця", "шевченка"},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Fatalf("buckets = %v, want %v", buckets, want)
	}
}

func TestClassifyPreservesWordOrderWithinBucket(t *testing.T) {
	classifier := NewClassifier(testCatalog(t))

	buckets, err := classifier.Classify([]string{"піб", "тарас", "григорович", "шевченко"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if want := []string{"тарас", "григорович", "шевченко"}; !reflect.DeepEqual(buckets["fullname"], want) {
		t.Fatalf("fullname bucket = %v, want %v", buckets["fullname"], want)
	}
}

func TestClassifyMergesRepeatedKeyword(t *testing.T) {
	classifier := NewClassifier(testCatalog(t))

	buckets, err := classifier.Classify([]string{"ціна", "100", "адреса", "вул", "ціна", "200"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	// The later run is concatenated ahead of the earlier one; the field
	// name appears once.
	if want := []string{"200", "100"}; !reflect.DeepEqual(buckets["price"], want) {
		t.Fatalf("price bucket = %v, want %v", buckets["price"], want)
	}
	if want := []string{"вул"}; !reflect.DeepEqual(buckets["address"], want) {
		t.Fatalf("address bucket = %v, want %v", buckets["address"], want)
	}
	if len(buckets) != 2 {
		t.Fatalf("buckets = %v, want exactly two fields", buckets)
	}
}

func TestClassifyFailsOnWordBeforeAnyKeyword(t *testing.T) {
	classifier := NewClassifier(testCatalog(t))

	_, err := classifier.Classify([]string{"шевченка", "адреса", "вулиця"})
	if err == nil {
		t.Fatalf("Classify() expected error")
	}
	if !domain.IsKind(err, domain.ErrMalformedQuery) {
		t.Fatalf("expected ErrMalformedQuery, got %v", err)
	}
	if domain.UserMessage(err) != domain.MsgMalformedQuery {
		t.Fatalf("UserMessage = %q", domain.UserMessage(err))
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	classifier := NewClassifier(testCatalog(t))

	buckets, err := classifier.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(buckets) != 0 {
		t.Fatalf("buckets = %v, want empty", buckets)
	}
}

func TestClassifyTrailingKeywordCommitsEmptyBucket(t *testing.T) {
	classifier := NewClassifier(testCatalog(t))

	buckets, err := classifier.Classify([]string{"адреса"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	words, ok := buckets["address"]
	if !ok {
		t.Fatalf("address bucket missing: %v", buckets)
	}
	if len(words) != 0 {
		t.Fatalf("address bucket = %v, want empty", words)
	}
}
