package referralcode

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("expected 8-character code, got %q", code)
		}
		if !strings.HasPrefix(code, Prefix) {
			t.Fatalf("expected %q prefix, got %q", Prefix, code)
		}
		for _, c := range code[len(Prefix):] {
			if !strings.ContainsRune(charset, c) {
				t.Fatalf("unexpected character %q in code %q", c, code)
			}
		}
	}
}

func TestIssueRetriesOnCollision(t *testing.T) {
	calls := 0
	code, err := Issue(func(string) (bool, error) {
		calls++
		return calls <= 3, nil // first three candidates are taken
	})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if calls != 4 {
		t.Fatalf("expected 4 uniqueness checks, got %d", calls)
	}
	if !strings.HasPrefix(code, Prefix) {
		t.Fatalf("bad code %q", code)
	}
}

func TestIssueGivesUpEventually(t *testing.T) {
	_, err := Issue(func(string) (bool, error) { return true, nil })
	if err == nil {
		t.Fatal("expected error when every code is taken")
	}
}

func TestIssuePropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := Issue(func(string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
