package hcluster

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestNode_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(sampleTree())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got jsonNode
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.ID != -3 || got.Distance == nil || *got.Distance != 4.0 {
		t.Fatalf("root = %+v, want id -3 distance 4", got)
	}
	if got.Left == nil || got.Left.ID != -1 || got.Right == nil || got.Right.ID != -2 {
		t.Fatalf("unexpected children in %s", b)
	}
	leaf := got.Right.Right
	if leaf == nil || leaf.ID != 3 || leaf.Distance != nil || leaf.Left != nil {
		t.Errorf("leaf 3 = %+v, want bare leaf", leaf)
	}
}

func TestMarshalLabeled(t *testing.T) {
	b, err := MarshalLabeled(sampleTree(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("MarshalLabeled: %v", err)
	}

	var got jsonNode
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Left.Left.Label != "a" || got.Right.Left.Label != "c" {
		t.Errorf("labels not attached: %s", b)
	}
	if got.Right.Right.Label != "" {
		t.Errorf("leaf without a label should omit it, got %q", got.Right.Right.Label)
	}
	if got.Label != "" {
		t.Errorf("merge node should not carry a label, got %q", got.Label)
	}

	b, err = MarshalLabeled(nil, nil)
	if err != nil || string(b) != "null" {
		t.Errorf("MarshalLabeled(nil) = (%s, %v), want null", b, err)
	}
}
