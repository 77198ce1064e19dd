package stylist

import (
	"errors"
	"testing"
)

func TestParseObjectNotJSON(t *testing.T) {
	_, err := parseObject([]byte("sorry, I can't do that"), analysisRequirement)
	if err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
	var serr *SchemaError
	if errors.As(err, &serr) {
		t.Errorf("non-JSON payload must not be a SchemaError, got %v", serr)
	}
}

func TestParseObjectReportsFirstMissingField(t *testing.T) {
	// "type" present, "color" absent: color is the first offender in
	// declaration order even though later fields are missing too.
	_, err := parseObject([]byte(`{"type":"Denim Jacket"}`), analysisRequirement)

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if serr.Field != "color" || serr.Reason != "missing" {
		t.Errorf("expected color/missing, got %q/%q", serr.Field, serr.Reason)
	}
}

func TestParseObjectNullCountsAsMissing(t *testing.T) {
	_, err := parseObject([]byte(`{"type":null,"color":"Blue","fabric":"Denim","category":"Outerwear","style":"Casual"}`), analysisRequirement)

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if serr.Field != "type" || serr.Reason != "missing" {
		t.Errorf("expected type/missing, got %q/%q", serr.Field, serr.Reason)
	}
}

func TestParseObjectRejectsUnknownEnum(t *testing.T) {
	_, err := parseObject([]byte(`{"type":"Denim Jacket","color":"Blue","fabric":"Denim","category":"Jackets","style":"Casual"}`), analysisRequirement)

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if serr.Field != "category" {
		t.Errorf("expected offending field category, got %q", serr.Field)
	}
}

func TestParseObjectAllowsEmptyFreeText(t *testing.T) {
	obj, err := parseObject([]byte(`{"type":"","color":"","fabric":"","category":"Tops","style":"Casual"}`), analysisRequirement)
	if err != nil {
		t.Fatalf("expected empty free-text fields to pass, got %v", err)
	}
	if obj["category"] != "Tops" {
		t.Errorf("unexpected object: %v", obj)
	}
}

func TestParseObjectArrayShape(t *testing.T) {
	_, err := parseObject([]byte(`{"id":"o1","title":"Look","occasion":"Work","itemsUsed":"a,b","rationale":"r","shoppingSuggestions":[]}`), outfitRequirement)

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if serr.Field != "itemsUsed" || serr.Reason != "not an array" {
		t.Errorf("expected itemsUsed/not an array, got %q/%q", serr.Field, serr.Reason)
	}
}
