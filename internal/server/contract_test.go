package server

import (
	"testing"

	"gamegen/internal/apispec"
)

func TestOpenAPIDocumentMatchesServer(t *testing.T) {
	doc, err := apispec.Load("../../api/openapi.yaml")
	if err != nil {
		t.Fatalf("load openapi: %v", err)
	}
	if err := apispec.Check(doc, Contract()); err != nil {
		t.Fatalf("openapi out of date: %v", err)
	}
}
