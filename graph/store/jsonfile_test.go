package store

import (
	"context"
	"errors"
	"testing"
)

func TestJSONFileStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONFileStore(dir)
	if err != nil {
		t.Fatalf("NewJSONFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "run-1", sampleCheckpoint("deploy")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CurrentNode != "deploy" {
		t.Errorf("CurrentNode = %q, want deploy", got.CurrentNode)
	}
	if got.ContextValues["goal"] != "ship it" {
		t.Errorf("ContextValues[goal] = %q", got.ContextValues["goal"])
	}
}

func TestJSONFileStore_LoadMissing(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewJSONFileStore(dir)
	if _, err := s.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing run: got %v, want ErrNotFound", err)
	}
}

func TestJSONFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, _ := NewJSONFileStore(dir)
	_ = s1.Save(ctx, "run-1", sampleCheckpoint("deploy"))

	s2, err := NewJSONFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := s2.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if got.CurrentNode != "deploy" {
		t.Errorf("CurrentNode = %q after reopen, want deploy", got.CurrentNode)
	}
}
