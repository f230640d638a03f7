package static

import (
	"context"
	"reflect"
	"testing"
)

func TestNormalizeLowercasesAndSplits(t *testing.T) {
	n := New(nil, nil)

	got, err := n.Normalize(context.Background(), "Показати\tНерухомість\nАдреса")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{"показати", "нерухомість", "адреса"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeTrimsPunctuation(t *testing.T) {
	n := New(nil, nil)

	got, err := n.Normalize(context.Background(), "адреса: вулиця, шевченка! (12)")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{"адреса", "вулиця", "шевченка", "12"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeAppliesLemmasBeforeStopWords(t *testing.T) {
	n := New([]string{"і", "квартира"}, map[string]string{"квартиру": "квартира"})

	got, err := n.Normalize(context.Background(), "показати квартиру і опис")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	// "квартиру" lemmatizes to "квартира", which is then stop-filtered.
	want := []string{"показати", "опис"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeDropsPunctuationOnlyTokens(t *testing.T) {
	n := New(nil, nil)

	got, err := n.Normalize(context.Background(), "ціна - 85000")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{"ціна", "85000"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := New(nil, nil)

	got, err := n.Normalize(context.Background(), "   \n\t ")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Normalize() = %v, want empty", got)
	}
}
